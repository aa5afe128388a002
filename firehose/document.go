// Package firehose defines the resolved provisioning document for a
// Kinesis Data Firehose delivery stream.
//
// The document is the wire contract between firehosegen and the external
// provisioning engine that applies it. Optional blocks are pointer-typed
// and marshal away entirely when absent, rather than being emitted as
// empty placeholders.
package firehose

import (
	"encoding/json"

	"gopkg.in/yaml.v2"
)

// Document is the complete output of one resolution run.
//
// Besides the delivery stream itself it carries the auxiliary resources
// the stream references but does not own: the delivery role when the
// caller asked firehosegen to declare one, and the backup log group and
// stream when those are to be created rather than reused.
type Document struct {
	DeliveryStream DeliveryStream `yaml:"deliveryStream" json:"deliveryStream"`

	DeliveryRole *IAMRole `yaml:"deliveryRole,omitempty" json:"deliveryRole,omitempty"`

	BackupLogGroup  *LogGroup  `yaml:"backupLogGroup,omitempty" json:"backupLogGroup,omitempty"`
	BackupLogStream *LogStream `yaml:"backupLogStream,omitempty" json:"backupLogStream,omitempty"`
}

// YAML returns the document as YAML, the form committed to gitops
// repositories.
func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// JSON returns the document as indented JSON, the form handed to
// engines that want machine-readable input.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// DeliveryStream is the top-level stream resource.
type DeliveryStream struct {
	Name        string `yaml:"name" json:"name"`
	Destination string `yaml:"destination" json:"destination"`

	ServerSideEncryption *ServerSideEncryption `yaml:"serverSideEncryption,omitempty" json:"serverSideEncryption,omitempty"`

	ExtendedS3 ExtendedS3 `yaml:"extendedS3" json:"extendedS3"`
}

// ServerSideEncryption is the encryption block of the stream itself.
type ServerSideEncryption struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	KeyType string `yaml:"keyType,omitempty" json:"keyType,omitempty"`
	KeyARN  string `yaml:"keyARN,omitempty" json:"keyARN,omitempty"`
}

// ExtendedS3 is the extended S3 destination configuration.
type ExtendedS3 struct {
	RoleARN           string `yaml:"roleARN" json:"roleARN"`
	BucketARN         string `yaml:"bucketARN" json:"bucketARN"`
	Prefix            string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	ErrorOutputPrefix string `yaml:"errorOutputPrefix,omitempty" json:"errorOutputPrefix,omitempty"`
	BufferingSize     int    `yaml:"bufferingSize" json:"bufferingSize"`
	BufferingInterval int    `yaml:"bufferingInterval" json:"bufferingInterval"`
	CompressionFormat string `yaml:"compressionFormat" json:"compressionFormat"`

	// S3BackupMode is either Enabled or Disabled.
	S3BackupMode string `yaml:"s3BackupMode" json:"s3BackupMode"`

	DynamicPartitioning DynamicPartitioning `yaml:"dynamicPartitioning" json:"dynamicPartitioning"`

	Processing Processing `yaml:"processing" json:"processing"`

	DataFormatConversion *DataFormatConversion `yaml:"dataFormatConversion,omitempty" json:"dataFormatConversion,omitempty"`

	S3Backup *S3Backup `yaml:"s3Backup,omitempty" json:"s3Backup,omitempty"`
}

// DynamicPartitioning enables partitioning-by-metadata on the destination.
type DynamicPartitioning struct {
	Enabled       bool `yaml:"enabled" json:"enabled"`
	RetryDuration int  `yaml:"retryDuration,omitempty" json:"retryDuration,omitempty"`
}

// S3BackupMode values consumed by the provisioning engine.
const (
	BackupModeEnabled  = "Enabled"
	BackupModeDisabled = "Disabled"
)

// S3Backup is the backup destination configuration, present iff backup
// is enabled.
type S3Backup struct {
	RoleARN           string `yaml:"roleARN" json:"roleARN"`
	BucketARN         string `yaml:"bucketARN" json:"bucketARN"`
	Prefix            string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	ErrorOutputPrefix string `yaml:"errorOutputPrefix,omitempty" json:"errorOutputPrefix,omitempty"`
	BufferingSize     int    `yaml:"bufferingSize" json:"bufferingSize"`
	BufferingInterval int    `yaml:"bufferingInterval" json:"bufferingInterval"`
	CompressionFormat string `yaml:"compressionFormat" json:"compressionFormat"`

	CloudWatchLogging CloudWatchLogging `yaml:"cloudwatchLogging" json:"cloudwatchLogging"`
}

// CloudWatchLogging names the log group and stream backup delivery logs to.
type CloudWatchLogging struct {
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	LogGroupName  string `yaml:"logGroupName,omitempty" json:"logGroupName,omitempty"`
	LogStreamName string `yaml:"logStreamName,omitempty" json:"logStreamName,omitempty"`
}

// LogGroup is an auxiliary CloudWatch log group resource.
type LogGroup struct {
	Name            string `yaml:"name" json:"name"`
	RetentionInDays int    `yaml:"retentionInDays,omitempty" json:"retentionInDays,omitempty"`
}

// LogStream is an auxiliary CloudWatch log stream resource.
type LogStream struct {
	Name         string `yaml:"name" json:"name"`
	LogGroupName string `yaml:"logGroupName" json:"logGroupName"`
}

// IAMRole is the delivery role declared when the caller asked
// firehosegen to own it.
type IAMRole struct {
	Name string `yaml:"name" json:"name"`

	// AssumeRolePolicyDocument is the trust policy of the role.
	AssumeRolePolicyDocument string `yaml:"assumeRolePolicyDocument" json:"assumeRolePolicyDocument"`
}

// FirehoseAssumeRolePolicy is the trust policy of a declared delivery role.
const FirehoseAssumeRolePolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"Service": "firehose.amazonaws.com"},
      "Action": "sts:AssumeRole"
    }
  ]
}`

// RoleRef returns the ARN reference of a role declared in the same
// document. The account pseudo-parameter is substituted by the
// provisioning engine at apply time, which keeps resolution free of
// identity lookups that no enabled feature asked for.
func RoleRef(name string) string {
	return "arn:aws:iam::${aws:accountId}:role/" + name
}
