package firehose

// Processing is the record-processing block of the destination.
//
// Enabled may be true with zero processors: enabling the feature without
// any qualifying step is a deliberate pass-through, not an error.
type Processing struct {
	Enabled    bool        `yaml:"enabled" json:"enabled"`
	Processors []Processor `yaml:"processors,omitempty" json:"processors,omitempty"`
}

// Processor is one ordered transformation step applied to each record.
type Processor struct {
	Type       string      `yaml:"type" json:"type"`
	Parameters []Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Parameter is a single named processor parameter.
type Parameter struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Processor types, in their fixed pipeline order.
const (
	ProcessorLambda                  = "Lambda"
	ProcessorMetadataExtraction      = "MetadataExtraction"
	ProcessorAppendDelimiterToRecord = "AppendDelimiterToRecord"
	ProcessorRecordDeAggregation     = "RecordDeAggregation"
)

// Processor parameter names.
const (
	ParameterLambdaARN               = "LambdaArn"
	ParameterBufferSizeInMBs         = "BufferSizeInMBs"
	ParameterBufferIntervalInSeconds = "BufferIntervalInSeconds"
	ParameterNumberOfRetries         = "NumberOfRetries"
	ParameterJSONParsingEngine       = "JsonParsingEngine"
	ParameterMetadataExtractionQuery = "MetadataExtractionQuery"
	ParameterSubRecordType           = "SubRecordType"
	ParameterDelimiter               = "Delimiter"
)

// JSONParsingEngineJQ is the only metadata-extraction engine Firehose
// supports.
const JSONParsingEngineJQ = "JQ-1.6"
