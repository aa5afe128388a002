package config

// Config is the top-level configuration of firehosegen.
//
// It describes the desired state of one delivery stream, and optionally
// where the resolved provisioning document is delivered to.
type Config struct {
	// DeliveryStream is the desired state of the delivery stream.
	DeliveryStream DeliveryStream `yaml:"deliveryStream" toml:"delivery_stream"`

	// GitOps configures the delivery of the resolved document.
	//
	// If GitOps is not specified, the document is written to the local
	// .firehosegen directory and, when the builtin provisioner is enabled,
	// applied directly against the AWS API.
	//
	// If GitOps is specified, the document is committed and pushed to the
	// gitops repository, and it's the responsibility of the CD system of
	// the target repository to apply it.
	GitOps *Delegate `yaml:"gitOps" toml:"gitops"`

	// Provision configures the builtin AWS provisioner.
	Provision Provision `yaml:"provision" toml:"provision"`
}

// Provision configures how the resolved document is applied.
type Provision struct {
	// Builtin specifies whether firehosegen itself applies the document
	// against the AWS API, instead of delegating to an external engine.
	Builtin bool `yaml:"builtin" toml:"builtin"`

	// AWSRegion is the region the builtin provisioner and the metadata
	// lookups use. If empty, the ambient AWS configuration decides.
	AWSRegion string `yaml:"awsRegion" toml:"aws_region"`

	// AWSProfile is the shared-config profile to use, if any.
	AWSProfile string `yaml:"awsProfile" toml:"aws_profile"`
}

func (c *Config) Validate() error {
	if err := c.DeliveryStream.Validate(); err != nil {
		return err
	}

	if c.GitOps != nil {
		if err := c.GitOps.Validate(); err != nil {
			return err
		}
	}

	return nil
}
