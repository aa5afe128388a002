// Package resolver turns a delivery-stream configuration into the
// provisioning document consumed by the external engine.
//
// Resolution is a single pass over an immutable configuration snapshot.
// The three concerns — the processor chain, the backup settings, and the
// format conversion — are resolved independently of each other and merged
// into one document. Nothing here talks to AWS except through the
// injected Metadata lookups, and those are consulted only when an enabled
// feature actually needs a default they provide.
package resolver

import (
	"context"
	"fmt"

	"github.com/flowtide/firehosegen/config"
	"github.com/flowtide/firehosegen/firehose"
)

// Metadata supplies the ambient identity values some defaults derive
// from. Implementations are expected to cache: the resolver calls each
// lookup at most once per run, and not at all when no enabled feature
// needs it.
type Metadata interface {
	// AccountID returns the AWS account ID of the caller.
	AccountID(ctx context.Context) (string, error)

	// Region returns the name of the ambient AWS region.
	Region(ctx context.Context) (string, error)
}

// Resolver resolves one delivery-stream configuration.
type Resolver struct {
	Config config.DeliveryStream

	// Meta is consulted for schema-configuration defaults. It may be nil
	// when format conversion is disabled, or when both the catalog ID and
	// the region are set explicitly.
	Meta Metadata
}

// Resolve computes the provisioning document.
func (r *Resolver) Resolve(ctx context.Context) (*firehose.Document, error) {
	ds := r.Config

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid delivery stream config: %w", err)
	}

	roleARN := resolveRoleARN(ds)

	backup, backupMode := resolveBackup(ds, roleARN)

	conversion, err := resolveFormatConversion(ctx, ds, roleARN, r.Meta)
	if err != nil {
		return nil, err
	}

	doc := &firehose.Document{
		DeliveryStream: firehose.DeliveryStream{
			Name:                 ds.Name,
			Destination:          config.DefaultDestination,
			ServerSideEncryption: resolveEncryption(ds.Encryption),
			ExtendedS3: firehose.ExtendedS3{
				RoleARN:              roleARN,
				BucketARN:            ds.BucketARN,
				Prefix:               ds.Prefix,
				ErrorOutputPrefix:    ds.ErrorOutputPrefix,
				BufferingSize:        intOrDefault(ds.BufferingSize, config.DefaultBufferingSize),
				BufferingInterval:    intOrDefault(ds.BufferingInterval, config.DefaultBufferingInterval),
				CompressionFormat:    stringOrDefault(ds.CompressionFormat, config.DefaultCompressionFormat),
				S3BackupMode:         backupMode,
				DynamicPartitioning:  resolveDynamicPartitioning(ds.DynamicPartitioning),
				Processing:           buildProcessing(ds),
				DataFormatConversion: conversion,
				S3Backup:             backup,
			},
		},
	}

	if ds.Role.Create {
		doc.DeliveryRole = &firehose.IAMRole{
			Name:                     ds.RoleName(),
			AssumeRolePolicyDocument: firehose.FirehoseAssumeRolePolicy,
		}
	}

	if backup != nil && ds.Backup.Logging.CreateLogGroup {
		doc.BackupLogGroup = &firehose.LogGroup{
			Name: backup.CloudWatchLogging.LogGroupName,
		}
		doc.BackupLogStream = &firehose.LogStream{
			Name:         backup.CloudWatchLogging.LogStreamName,
			LogGroupName: backup.CloudWatchLogging.LogGroupName,
		}
	}

	return doc, nil
}

// resolveRoleARN picks the delivery role: the one declared in the same
// document when the caller asked for it, the supplied one otherwise.
func resolveRoleARN(ds config.DeliveryStream) string {
	if ds.Role.Create {
		return firehose.RoleRef(ds.RoleName())
	}
	return ds.Role.ARN
}

func resolveEncryption(e config.Encryption) *firehose.ServerSideEncryption {
	if !e.Enabled {
		return nil
	}

	return &firehose.ServerSideEncryption{
		Enabled: true,
		KeyType: stringOrDefault(e.KeyType, config.DefaultEncryptionKeyType),
		KeyARN:  e.KeyARN,
	}
}

func resolveDynamicPartitioning(dp config.DynamicPartitioning) firehose.DynamicPartitioning {
	out := firehose.DynamicPartitioning{
		Enabled: dp.Enabled,
	}

	if dp.Enabled {
		out.RetryDuration = intOrDefault(dp.RetryDuration, config.DefaultDynamicPartitioningRetryDuration)
	}

	return out
}

func intOrDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func stringOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
