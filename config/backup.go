package config

import "fmt"

// Backup configures the secondary copy of raw records to a separate
// bucket, together with its CloudWatch logging.
type Backup struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// BucketARN is the ARN of the backup bucket. Required when enabled.
	BucketARN string `yaml:"bucketARN" toml:"bucket_arn"`

	Prefix string `yaml:"prefix" toml:"prefix"`

	ErrorOutputPrefix string `yaml:"errorOutputPrefix" toml:"error_output_prefix"`

	// BufferingSize is the buffering hint in MiB. Defaults to 5.
	BufferingSize int `yaml:"bufferingSize" toml:"buffering_size"`

	// BufferingInterval is the buffering hint in seconds. Defaults to 300.
	BufferingInterval int `yaml:"bufferingInterval" toml:"buffering_interval"`

	// CompressionFormat defaults to UNCOMPRESSED.
	CompressionFormat string `yaml:"compressionFormat" toml:"compression_format"`

	// If true, the backup delivery assumes the same role as the stream
	// itself. If false, RoleARN must be specified, the role needs to
	// exist, and is used for the backup delivery.
	UseFirehoseRole bool `yaml:"useFirehoseRole" toml:"use_firehose_role"`

	// RoleARN is the ARN of an existing role used for the backup delivery.
	// Used only when UseFirehoseRole is false.
	RoleARN string `yaml:"roleARN" toml:"role_arn"`

	Logging BackupLogging `yaml:"logging" toml:"logging"`
}

// BackupLogging configures CloudWatch logging of the backup delivery.
type BackupLogging struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// CreateLogGroup specifies whether the log group and the log stream
	// are declared as part of the resolved document.
	// If false, they need to exist already.
	CreateLogGroup bool `yaml:"createLogGroup" toml:"create_log_group"`

	// LogGroupName is the name of the log group. If empty, a name derived
	// from the stream name is used.
	LogGroupName string `yaml:"logGroupName" toml:"log_group_name"`

	// LogStreamName is the name of the log stream within the group.
	LogStreamName string `yaml:"logStreamName" toml:"log_stream_name"`
}

func (b *Backup) Validate() error {
	if !b.Enabled {
		return nil
	}

	if b.BucketARN == "" {
		return fmt.Errorf("backup.bucketARN is required")
	}

	if !b.UseFirehoseRole && b.RoleARN == "" {
		return fmt.Errorf("backup.roleARN is required when backup.useFirehoseRole is false")
	}

	return nil
}
