// Package firehoseresource manages lifecycles of the AWS resources a
// resolved document declares: the delivery stream itself, the delivery
// role, and the backup log group and stream.
package firehoseresource

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go/service/firehose"
	"github.com/aws/aws-sdk-go/service/iam"

	"github.com/flowtide/firehosegen/awsclicompat"
	fh "github.com/flowtide/firehosegen/firehose"
)

// Resources manages the AWS resources declared by one document.
type Resources struct {
	AWSRegion  string
	AWSProfile string

	once sync.Once
	svc  *firehose.Firehose
	logs *cloudwatchlogs.CloudWatchLogs
	iam  *iam.IAM
}

func (r *Resources) createOrGetServices() (*firehose.Firehose, *cloudwatchlogs.CloudWatchLogs, *iam.IAM) {
	r.once.Do(func() {
		sess := awsclicompat.NewSession(r.AWSRegion, r.AWSProfile)
		r.svc = firehose.New(sess)
		r.logs = cloudwatchlogs.New(sess)
		r.iam = iam.New(sess)
	})

	return r.svc, r.logs, r.iam
}

// EnsureDeliveryStreamCreated ensures that the delivery stream described
// by the document exists. If it already exists it is left as is; drift
// reconciliation belongs to a full provisioning engine, not here.
// It returns the ARN of the stream on success.
func (r *Resources) EnsureDeliveryStreamCreated(ctx context.Context, ds fh.DeliveryStream) (string, error) {
	svc, _, _ := r.createOrGetServices()

	res, err := svc.DescribeDeliveryStreamWithContext(ctx, &firehose.DescribeDeliveryStreamInput{
		DeliveryStreamName: aws.String(ds.Name),
	})
	if err == nil {
		return aws.StringValue(res.DeliveryStreamDescription.DeliveryStreamARN), nil
	}

	aerr, ok := err.(awserr.Error)
	if !ok || aerr.Code() != firehose.ErrCodeResourceNotFoundException {
		return "", err
	}

	input := &firehose.CreateDeliveryStreamInput{
		DeliveryStreamName:                 aws.String(ds.Name),
		DeliveryStreamType:                 aws.String(firehose.DeliveryStreamTypeDirectPut),
		ExtendedS3DestinationConfiguration: extendedS3Configuration(ds.ExtendedS3),
	}

	if sse := ds.ServerSideEncryption; sse != nil && sse.Enabled {
		enc := &firehose.DeliveryStreamEncryptionConfigurationInput{
			KeyType: aws.String(sse.KeyType),
		}
		if sse.KeyARN != "" {
			enc.KeyARN = aws.String(sse.KeyARN)
		}
		input.DeliveryStreamEncryptionConfigurationInput = enc
	}

	out, err := svc.CreateDeliveryStreamWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("unable to create delivery stream %s: %w", ds.Name, err)
	}

	return aws.StringValue(out.DeliveryStreamARN), nil
}

// EnsureDeliveryStreamDeleted ensures that the delivery stream with the
// given name does not exist.
func (r *Resources) EnsureDeliveryStreamDeleted(ctx context.Context, name string) error {
	svc, _, _ := r.createOrGetServices()

	_, err := svc.DeleteDeliveryStreamWithContext(ctx, &firehose.DeleteDeliveryStreamInput{
		DeliveryStreamName: aws.String(name),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == firehose.ErrCodeResourceNotFoundException {
			return nil
		}

		return fmt.Errorf("unable to delete delivery stream %s: %w", name, err)
	}

	return nil
}

// EnsureRoleCreated ensures that the declared delivery role exists and
// returns its ARN.
func (r *Resources) EnsureRoleCreated(ctx context.Context, role fh.IAMRole) (string, error) {
	_, _, svc := r.createOrGetServices()

	out, err := svc.CreateRoleWithContext(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(role.Name),
		AssumeRolePolicyDocument: aws.String(role.AssumeRolePolicyDocument),
	})
	if err == nil {
		return aws.StringValue(out.Role.Arn), nil
	}

	if aerr, ok := err.(awserr.Error); ok && aerr.Code() == iam.ErrCodeEntityAlreadyExistsException {
		res, err := svc.GetRoleWithContext(ctx, &iam.GetRoleInput{
			RoleName: aws.String(role.Name),
		})
		if err != nil {
			return "", fmt.Errorf("unable to get role %s: %w", role.Name, err)
		}

		return aws.StringValue(res.Role.Arn), nil
	}

	return "", fmt.Errorf("unable to create role %s: %w", role.Name, err)
}

// EnsureRoleDeleted ensures that the role with the given name does not
// exist.
func (r *Resources) EnsureRoleDeleted(ctx context.Context, name string) error {
	_, _, svc := r.createOrGetServices()

	_, err := svc.DeleteRoleWithContext(ctx, &iam.DeleteRoleInput{
		RoleName: aws.String(name),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == iam.ErrCodeNoSuchEntityException {
			return nil
		}

		return fmt.Errorf("unable to delete role %s: %w", name, err)
	}

	return nil
}

// EnsureLogGroupCreated ensures that the log group exists.
func (r *Resources) EnsureLogGroupCreated(ctx context.Context, name string) error {
	_, logs, _ := r.createOrGetServices()

	_, err := logs.CreateLogGroupWithContext(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(name),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == cloudwatchlogs.ErrCodeResourceAlreadyExistsException {
			return nil
		}

		return fmt.Errorf("unable to create log group %s: %w", name, err)
	}

	return nil
}

// EnsureLogStreamCreated ensures that the log stream exists within the
// group.
func (r *Resources) EnsureLogStreamCreated(ctx context.Context, group, stream string) error {
	_, logs, _ := r.createOrGetServices()

	_, err := logs.CreateLogStreamWithContext(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(group),
		LogStreamName: aws.String(stream),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == cloudwatchlogs.ErrCodeResourceAlreadyExistsException {
			return nil
		}

		return fmt.Errorf("unable to create log stream %s/%s: %w", group, stream, err)
	}

	return nil
}

// EnsureLogGroupDeleted ensures that the log group, and with it all of
// its streams, does not exist.
func (r *Resources) EnsureLogGroupDeleted(ctx context.Context, name string) error {
	_, logs, _ := r.createOrGetServices()

	_, err := logs.DeleteLogGroupWithContext(ctx, &cloudwatchlogs.DeleteLogGroupInput{
		LogGroupName: aws.String(name),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == cloudwatchlogs.ErrCodeResourceNotFoundException {
			return nil
		}

		return fmt.Errorf("unable to delete log group %s: %w", name, err)
	}

	return nil
}
