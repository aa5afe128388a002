package provisioner

import (
	"context"
	"fmt"

	"github.com/flowtide/firehosegen/awsmeta"
	"github.com/flowtide/firehosegen/config"
	"github.com/flowtide/firehosegen/firehose"
	"github.com/flowtide/firehosegen/provisioner/builtin"
	"github.com/flowtide/firehosegen/provisioner/render"
	"github.com/flowtide/firehosegen/resolver"
	"github.com/flowtide/firehosegen/state"
)

// Chain resolves the configured delivery stream once and runs every
// provisioner that is enabled in the config.Config against the
// resolved document.
type Chain struct {
	cfg *config.Config

	document *firehose.Document

	provisioners []delegatableProvisioner
}

func ChainFromEnv(ctx context.Context) (*Chain, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}

	return NewChain(ctx, cfg)
}

func NewChain(ctx context.Context, cfg *config.Config) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	meta := &awsmeta.CallerMetadata{
		AWSRegion:  cfg.Provision.AWSRegion,
		AWSProfile: cfg.Provision.AWSProfile,
	}

	r := &resolver.Resolver{
		Config: cfg.DeliveryStream,
		Meta:   meta,
	}

	doc, err := r.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve delivery stream %s: %w", cfg.DeliveryStream.Name, err)
	}

	var chain Chain

	var dir string
	if cfg.GitOps != nil && cfg.GitOps.Git != nil {
		dir = cfg.GitOps.Git.Path
	}

	chain.provisioners = append(chain.provisioners, newDelegatableProvisioner("render", cfg.GitOps, &render.Provisioner{
		Document: doc,
		Dir:      dir,
	}))

	// The builtin provisioner never delegates. Delegating would hand the
	// run to a pipeline that this process cannot observe.
	if cfg.Provision.Builtin {
		chain.provisioners = append(chain.provisioners, newDelegatableProvisioner("aws", nil, &builtin.BuiltinAWSProvisioner{
			Document:   doc,
			AWSRegion:  cfg.Provision.AWSRegion,
			AWSProfile: cfg.Provision.AWSProfile,
		}))
	}

	chain.cfg = cfg
	chain.document = doc

	return &chain, nil
}

// Document returns the resolved document the chain operates on.
func (c *Chain) Document() *firehose.Document {
	return c.document
}

// Apply renders and delivers the delivery stream.
// An apply is idempotent.
//
// If the configuration contains a gitOps field, the resolved document is
// committed to the gitops repository and it's up to the repository's
// CI/CD pipeline to create the AWS resources.
//
// If the configuration enables builtin provisioning, the AWS resources
// are created directly.
func (c *Chain) Apply(ctx context.Context) error {
	for i := range c.provisioners {
		if _, err := c.provisioners[i].Apply(ctx); err != nil {
			return err
		}
	}

	return state.NewStore().AddDeliveryStreamName(ctx, c.document.DeliveryStream.Name)
}

// Destroy deletes the delivery stream and everything the document
// declared alongside it. A destroy is idempotent.
func (c *Chain) Destroy(ctx context.Context) error {
	for i := range c.provisioners {
		if _, err := c.provisioners[i].Destroy(ctx); err != nil {
			return err
		}
	}

	return state.NewStore().DeleteDeliveryStreamName(ctx, c.document.DeliveryStream.Name)
}
