package config

import "fmt"

// FormatConversion configures conversion of incoming records into a
// columnar format against a Glue schema.
type FormatConversion struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// InputFormat selects the deserializer: "OpenX" or "HIVE".
	InputFormat string `yaml:"inputFormat" toml:"input_format"`

	// OutputFormat selects the serializer: "PARQUET" or "ORC".
	OutputFormat string `yaml:"outputFormat" toml:"output_format"`

	OpenX OpenXJSONOptions `yaml:"openx" toml:"openx"`

	Hive HiveJSONOptions `yaml:"hive" toml:"hive"`

	Parquet ParquetOptions `yaml:"parquet" toml:"parquet"`

	ORC ORCOptions `yaml:"orc" toml:"orc"`

	Schema SchemaConfig `yaml:"schema" toml:"schema"`
}

const (
	InputFormatOpenX = "OpenX"
	InputFormatHive  = "HIVE"

	OutputFormatParquet = "PARQUET"
	OutputFormatORC     = "ORC"
)

// OpenXJSONOptions are the options of the OpenX JSON deserializer.
type OpenXJSONOptions struct {
	CaseInsensitive          *bool             `yaml:"caseInsensitive" toml:"case_insensitive"`
	ConvertDotsToUnderscores bool              `yaml:"convertDotsToUnderscores" toml:"convert_dots_to_underscores"`
	ColumnToJSONKeyMappings  map[string]string `yaml:"columnToJSONKeyMappings" toml:"column_to_json_key_mappings"`
}

// HiveJSONOptions are the options of the native Hive JSON deserializer.
type HiveJSONOptions struct {
	TimestampFormats []string `yaml:"timestampFormats" toml:"timestamp_formats"`
}

// ParquetOptions are the options of the Parquet serializer.
type ParquetOptions struct {
	// Compression is GZIP, SNAPPY or UNCOMPRESSED. Defaults to SNAPPY.
	Compression string `yaml:"compression" toml:"compression"`

	BlockSizeBytes int `yaml:"blockSizeBytes" toml:"block_size_bytes"`

	PageSizeBytes int `yaml:"pageSizeBytes" toml:"page_size_bytes"`

	EnableDictionaryCompression bool `yaml:"enableDictionaryCompression" toml:"enable_dictionary_compression"`

	MaxPaddingBytes int `yaml:"maxPaddingBytes" toml:"max_padding_bytes"`

	// WriterVersion is V1 or V2. Defaults to V1.
	WriterVersion string `yaml:"writerVersion" toml:"writer_version"`
}

// ORCOptions are the options of the ORC serializer.
type ORCOptions struct {
	// Compression is ZLIB, SNAPPY or NONE. Defaults to SNAPPY.
	Compression string `yaml:"compression" toml:"compression"`

	BlockSizeBytes int `yaml:"blockSizeBytes" toml:"block_size_bytes"`

	StripeSizeBytes int `yaml:"stripeSizeBytes" toml:"stripe_size_bytes"`

	RowIndexStride int `yaml:"rowIndexStride" toml:"row_index_stride"`

	EnablePadding bool `yaml:"enablePadding" toml:"enable_padding"`

	// FormatVersion is V0_11 or V0_12. Defaults to V0_12.
	FormatVersion string `yaml:"formatVersion" toml:"format_version"`
}

// SchemaConfig points the conversion at a Glue table.
type SchemaConfig struct {
	// CatalogID is the Glue catalog ID. If empty, the account ID of the
	// caller is used.
	CatalogID string `yaml:"catalogID" toml:"catalog_id"`

	// Region is the region of the Glue catalog. If empty, the ambient
	// region is used.
	Region string `yaml:"region" toml:"region"`

	DatabaseName string `yaml:"databaseName" toml:"database_name"`

	TableName string `yaml:"tableName" toml:"table_name"`

	// VersionID is the table version. Defaults to LATEST.
	VersionID string `yaml:"versionID" toml:"version_id"`

	// If true, the schema lookup assumes the same role as the stream
	// itself. If false, RoleARN must be specified, the role needs to
	// exist, and is used for the schema lookup.
	UseFirehoseRole bool `yaml:"useFirehoseRole" toml:"use_firehose_role"`

	// RoleARN is the ARN of an existing role used for the schema lookup.
	// Used only when UseFirehoseRole is false.
	RoleARN string `yaml:"roleARN" toml:"role_arn"`
}

const DefaultSchemaVersionID = "LATEST"

func (f *FormatConversion) Validate() error {
	if !f.Enabled {
		return nil
	}

	if f.Schema.DatabaseName == "" {
		return fmt.Errorf("formatConversion.schema.databaseName is required")
	}

	if f.Schema.TableName == "" {
		return fmt.Errorf("formatConversion.schema.tableName is required")
	}

	if !f.Schema.UseFirehoseRole && f.Schema.RoleARN == "" {
		return fmt.Errorf("formatConversion.schema.roleARN is required when formatConversion.schema.useFirehoseRole is false")
	}

	return nil
}
