package builtin

import (
	"context"
	"fmt"

	"github.com/flowtide/firehosegen/firehose"
	"github.com/flowtide/firehosegen/provisioner/builtin/firehoseresource"
	"github.com/flowtide/firehosegen/provisioner/plugin"
)

// BuiltinAWSProvisioner applies a resolved document directly against
// AWS, without delegating to an external provisioning engine.
type BuiltinAWSProvisioner struct {
	Document *firehose.Document

	AWSRegion  string
	AWSProfile string
}

// Render writes nothing. The builtin provisioner talks to AWS directly
// instead of leaving files for an external engine.
func (p *BuiltinAWSProvisioner) Render(ctx context.Context, dir string) (*plugin.RenderResult, error) {
	return &plugin.RenderResult{}, nil
}

func (p *BuiltinAWSProvisioner) Apply(ctx context.Context, _ *plugin.RenderResult) (*plugin.Result, error) {
	resources := &firehoseresource.Resources{
		AWSRegion:  p.AWSRegion,
		AWSProfile: p.AWSProfile,
	}

	doc := p.Document

	var r plugin.Result

	r.Outputs = map[string]plugin.Output{}

	if role := doc.DeliveryRole; role != nil {
		roleARN, err := resources.EnsureRoleCreated(ctx, *role)
		if err != nil {
			return nil, fmt.Errorf("unable to ensure delivery role to be created: %w", err)
		}

		// The stream references the declared role through a pseudo
		// parameter. Substitute the real ARN now that we know it.
		substituteRoleRef(doc, firehose.RoleRef(role.Name), roleARN)

		r.Outputs["deliveryRoleARN"] = plugin.Output{Type: "iamRole", Value: roleARN}
	}

	if g := doc.BackupLogGroup; g != nil {
		if err := resources.EnsureLogGroupCreated(ctx, g.Name); err != nil {
			return nil, fmt.Errorf("unable to ensure backup log group to be created: %w", err)
		}
	}

	if s := doc.BackupLogStream; s != nil {
		if err := resources.EnsureLogStreamCreated(ctx, s.LogGroupName, s.Name); err != nil {
			return nil, fmt.Errorf("unable to ensure backup log stream to be created: %w", err)
		}
	}

	streamARN, err := resources.EnsureDeliveryStreamCreated(ctx, doc.DeliveryStream)
	if err != nil {
		return nil, fmt.Errorf("unable to ensure delivery stream to be created: %w", err)
	}

	// Print the ARN of the delivery stream to stdout so that producers
	// can pick it up.
	fmt.Printf("DELIVERY_STREAM_ARN=%s\n", streamARN)

	r.Outputs["deliveryStreamARN"] = plugin.Output{Type: "deliveryStream", Value: streamARN}

	return &r, nil
}

func (p *BuiltinAWSProvisioner) Destroy(ctx context.Context) (*plugin.Result, error) {
	resources := &firehoseresource.Resources{
		AWSRegion:  p.AWSRegion,
		AWSProfile: p.AWSProfile,
	}

	doc := p.Document

	if err := resources.EnsureDeliveryStreamDeleted(ctx, doc.DeliveryStream.Name); err != nil {
		return nil, err
	}

	if role := doc.DeliveryRole; role != nil {
		if err := resources.EnsureRoleDeleted(ctx, role.Name); err != nil {
			return nil, err
		}
	}

	// Deleting the group takes its streams with it.
	if g := doc.BackupLogGroup; g != nil {
		if err := resources.EnsureLogGroupDeleted(ctx, g.Name); err != nil {
			return nil, err
		}
	}

	return &plugin.Result{}, nil
}

func substituteRoleRef(doc *firehose.Document, ref, arn string) {
	s3 := &doc.DeliveryStream.ExtendedS3

	if s3.RoleARN == ref {
		s3.RoleARN = arn
	}
	if b := s3.S3Backup; b != nil && b.RoleARN == ref {
		b.RoleARN = arn
	}
	if c := s3.DataFormatConversion; c != nil && c.SchemaConfiguration.RoleARN == ref {
		c.SchemaConfiguration.RoleARN = arn
	}
}
