package config

import "fmt"

// Processing configures the per-record transformation steps applied
// before delivery.
//
// Record processing as a whole is considered enabled when either a
// transformation Lambda is configured here, or dynamic partitioning is
// enabled on the stream. None of the individual steps below produce a
// processor while both are absent.
type Processing struct {
	// LambdaARN is the ARN of the Lambda function that transforms records.
	// Empty disables transformation.
	LambdaARN string `yaml:"lambdaARN" toml:"lambda_arn"`

	// LambdaBufferingSize is the buffering hint for the Lambda processor,
	// in MiB. Defaults to 3.
	LambdaBufferingSize int `yaml:"lambdaBufferingSize" toml:"lambda_buffering_size"`

	// LambdaBufferingInterval is the buffering hint for the Lambda
	// processor, in seconds. Defaults to 60.
	LambdaBufferingInterval int `yaml:"lambdaBufferingInterval" toml:"lambda_buffering_interval"`

	// LambdaRetries is the number of invocation retries. Defaults to 3.
	LambdaRetries int `yaml:"lambdaRetries" toml:"lambda_retries"`

	// MetadataExtractionQuery is the JQ query that extracts partitioning
	// keys out of each record. Empty disables metadata extraction.
	MetadataExtractionQuery string `yaml:"metadataExtractionQuery" toml:"metadata_extraction_query"`
}

const (
	DefaultLambdaBufferingSize     = 3
	DefaultLambdaBufferingInterval = 60
	DefaultLambdaRetries           = 3
)

// DynamicPartitioning routes records to different output prefixes based
// on metadata extracted from the records themselves.
type DynamicPartitioning struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// RetryDuration is the retry duration in seconds. Defaults to 300.
	RetryDuration int `yaml:"retryDuration" toml:"retry_duration"`

	// AppendDelimiter specifies whether a newline delimiter is appended
	// to every record.
	AppendDelimiter bool `yaml:"appendDelimiter" toml:"append_delimiter"`

	Deaggregation Deaggregation `yaml:"deaggregation" toml:"deaggregation"`
}

// Deaggregation splits aggregated source records back into sub-records.
type Deaggregation struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// SubRecordType is either "JSON" or "DELIMITED". Defaults to JSON.
	SubRecordType string `yaml:"subRecordType" toml:"sub_record_type"`

	// Delimiter is the sub-record delimiter. Used only when SubRecordType
	// is not JSON.
	Delimiter string `yaml:"delimiter" toml:"delimiter"`
}

const (
	DefaultDynamicPartitioningRetryDuration = 300

	SubRecordTypeJSON      = "JSON"
	SubRecordTypeDelimited = "DELIMITED"
)

func (d *DynamicPartitioning) Validate() error {
	if !d.Enabled {
		return nil
	}

	if d.Deaggregation.Enabled {
		switch d.Deaggregation.SubRecordType {
		case "", SubRecordTypeJSON:
		case SubRecordTypeDelimited:
			if d.Deaggregation.Delimiter == "" {
				return fmt.Errorf("deaggregation.delimiter is required for sub-record type %s", SubRecordTypeDelimited)
			}
		default:
			return fmt.Errorf("deaggregation.subRecordType %q is not supported", d.Deaggregation.SubRecordType)
		}
	}

	return nil
}
