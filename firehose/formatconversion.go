package firehose

// DataFormatConversion is the format-conversion block, present iff the
// feature is enabled.
type DataFormatConversion struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	InputFormat  InputFormat  `yaml:"inputFormat" json:"inputFormat"`
	OutputFormat OutputFormat `yaml:"outputFormat" json:"outputFormat"`

	SchemaConfiguration SchemaConfiguration `yaml:"schemaConfiguration" json:"schemaConfiguration"`
}

// InputFormat selects at most one deserializer. An unknown input-format
// choice yields an empty block.
type InputFormat struct {
	OpenXJSON *OpenXJSONSerDe `yaml:"openXJSONSerDe,omitempty" json:"openXJSONSerDe,omitempty"`
	HiveJSON  *HiveJSONSerDe  `yaml:"hiveJSONSerDe,omitempty" json:"hiveJSONSerDe,omitempty"`
}

// OutputFormat selects at most one serializer. An unknown output-format
// choice yields an empty block.
type OutputFormat struct {
	Parquet *ParquetSerDe `yaml:"parquetSerDe,omitempty" json:"parquetSerDe,omitempty"`
	ORC     *ORCSerDe     `yaml:"orcSerDe,omitempty" json:"orcSerDe,omitempty"`
}

// OpenXJSONSerDe deserializes JSON with the OpenX SerDe.
type OpenXJSONSerDe struct {
	CaseInsensitive          bool              `yaml:"caseInsensitive" json:"caseInsensitive"`
	ConvertDotsToUnderscores bool              `yaml:"convertDotsInJSONKeysToUnderscores" json:"convertDotsInJSONKeysToUnderscores"`
	ColumnToJSONKeyMappings  map[string]string `yaml:"columnToJSONKeyMappings,omitempty" json:"columnToJSONKeyMappings,omitempty"`
}

// HiveJSONSerDe deserializes JSON with the native Hive SerDe.
type HiveJSONSerDe struct {
	TimestampFormats []string `yaml:"timestampFormats,omitempty" json:"timestampFormats,omitempty"`
}

// ParquetSerDe serializes records as Apache Parquet.
type ParquetSerDe struct {
	Compression                 string `yaml:"compression" json:"compression"`
	BlockSizeBytes              int    `yaml:"blockSizeBytes,omitempty" json:"blockSizeBytes,omitempty"`
	PageSizeBytes               int    `yaml:"pageSizeBytes,omitempty" json:"pageSizeBytes,omitempty"`
	EnableDictionaryCompression bool   `yaml:"enableDictionaryCompression" json:"enableDictionaryCompression"`
	MaxPaddingBytes             int    `yaml:"maxPaddingBytes,omitempty" json:"maxPaddingBytes,omitempty"`
	WriterVersion               string `yaml:"writerVersion" json:"writerVersion"`
}

// ORCSerDe serializes records as Apache ORC.
type ORCSerDe struct {
	Compression     string `yaml:"compression" json:"compression"`
	BlockSizeBytes  int    `yaml:"blockSizeBytes,omitempty" json:"blockSizeBytes,omitempty"`
	StripeSizeBytes int    `yaml:"stripeSizeBytes,omitempty" json:"stripeSizeBytes,omitempty"`
	RowIndexStride  int    `yaml:"rowIndexStride,omitempty" json:"rowIndexStride,omitempty"`
	EnablePadding   bool   `yaml:"enablePadding" json:"enablePadding"`
	FormatVersion   string `yaml:"formatVersion" json:"formatVersion"`
}

// SchemaConfiguration points the conversion at a Glue table.
type SchemaConfiguration struct {
	CatalogID    string `yaml:"catalogID" json:"catalogID"`
	DatabaseName string `yaml:"databaseName" json:"databaseName"`
	TableName    string `yaml:"tableName" json:"tableName"`
	Region       string `yaml:"region" json:"region"`
	RoleARN      string `yaml:"roleARN" json:"roleARN"`
	VersionID    string `yaml:"versionID" json:"versionID"`
}

// Serializer defaults.
const (
	ParquetDefaultCompression   = "SNAPPY"
	ParquetDefaultWriterVersion = "V1"

	ORCDefaultCompression   = "SNAPPY"
	ORCDefaultFormatVersion = "V0_12"
)
