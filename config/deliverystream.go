package config

import "fmt"

// DeliveryStream represents the desired state of the Firehose delivery
// stream to be resolved into a provisioning document.
type DeliveryStream struct {
	// Name is the name of the delivery stream.
	Name string `yaml:"name" toml:"name"`

	// Destination is the destination of the delivery stream.
	// Only "extended_s3" is supported and it is the default.
	Destination string `yaml:"destination" toml:"destination"`

	// BucketARN is the ARN of the S3 bucket records are delivered to.
	BucketARN string `yaml:"bucketARN" toml:"bucket_arn"`

	// Prefix is the S3 key prefix of delivered objects.
	Prefix string `yaml:"prefix" toml:"prefix"`

	// ErrorOutputPrefix is the S3 key prefix of records that failed delivery.
	ErrorOutputPrefix string `yaml:"errorOutputPrefix" toml:"error_output_prefix"`

	// BufferingSize is the buffering hint in MiB. Defaults to 5.
	BufferingSize int `yaml:"bufferingSize" toml:"buffering_size"`

	// BufferingInterval is the buffering hint in seconds. Defaults to 300.
	BufferingInterval int `yaml:"bufferingInterval" toml:"buffering_interval"`

	// CompressionFormat is the compression applied to delivered objects.
	// Defaults to UNCOMPRESSED.
	CompressionFormat string `yaml:"compressionFormat" toml:"compression_format"`

	Encryption Encryption `yaml:"encryption" toml:"encryption"`

	Role Role `yaml:"role" toml:"role"`

	Processing Processing `yaml:"processing" toml:"processing"`

	DynamicPartitioning DynamicPartitioning `yaml:"dynamicPartitioning" toml:"dynamic_partitioning"`

	Backup Backup `yaml:"backup" toml:"backup"`

	FormatConversion FormatConversion `yaml:"formatConversion" toml:"format_conversion"`
}

// Encryption is the server-side-encryption setting of the stream itself.
type Encryption struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// KeyType is either AWS_OWNED_CMK or CUSTOMER_MANAGED_CMK.
	// Defaults to AWS_OWNED_CMK when encryption is enabled.
	KeyType string `yaml:"keyType" toml:"key_type"`

	// KeyARN is the ARN of the customer-managed KMS key.
	// Required when KeyType is CUSTOMER_MANAGED_CMK.
	KeyARN string `yaml:"keyARN" toml:"key_arn"`
}

// Role chooses between a delivery role declared by firehosegen and an
// existing role supplied by the caller.
type Role struct {
	// If true, the delivery role is declared as part of the resolved
	// document and referenced by the delivery stream.
	// If false, ARN must be specified, the role needs to exist, and is
	// used as the delivery role.
	Create bool `yaml:"create" toml:"create"`

	// ARN is the ARN of an existing IAM role assumed by the delivery
	// stream. Used only when Create is false.
	ARN string `yaml:"arn" toml:"arn"`

	// Name is the name of the declared role. Used only when Create is
	// true. Defaults to "firehose-" followed by the stream name.
	Name string `yaml:"name" toml:"name"`
}

const (
	// DefaultDestination is the only destination currently resolved.
	DefaultDestination = "extended_s3"

	DefaultBufferingSize     = 5
	DefaultBufferingInterval = 300

	DefaultCompressionFormat = "UNCOMPRESSED"

	DefaultEncryptionKeyType = "AWS_OWNED_CMK"
)

func (s *DeliveryStream) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Destination != "" && s.Destination != DefaultDestination {
		return fmt.Errorf("destination %q is not supported", s.Destination)
	}

	if s.BucketARN == "" {
		return fmt.Errorf("bucketARN is required")
	}

	if !s.Role.Create && s.Role.ARN == "" {
		return fmt.Errorf("role.arn is required when role.create is false")
	}

	if s.Encryption.Enabled && s.Encryption.KeyType == "CUSTOMER_MANAGED_CMK" && s.Encryption.KeyARN == "" {
		return fmt.Errorf("encryption.keyARN is required for CUSTOMER_MANAGED_CMK")
	}

	if err := s.DynamicPartitioning.Validate(); err != nil {
		return err
	}

	if err := s.Backup.Validate(); err != nil {
		return err
	}

	if err := s.FormatConversion.Validate(); err != nil {
		return err
	}

	return nil
}

// RoleName returns the name of the role declared by the resolved document.
func (s *DeliveryStream) RoleName() string {
	if s.Role.Name != "" {
		return s.Role.Name
	}
	return "firehose-" + s.Name
}
