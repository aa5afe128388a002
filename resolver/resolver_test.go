package resolver

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/flowtide/firehosegen/config"
	"github.com/flowtide/firehosegen/firehose"
)

func TestResolveMinimal(t *testing.T) {
	r := &Resolver{
		Config: config.DeliveryStream{
			Name:      "orders",
			BucketARN: "arn:aws:s3:::orders-bucket",
			Role: config.Role{
				ARN: "arn:aws:iam::123456789012:role/firehose-orders",
			},
		},
	}

	doc, err := r.Resolve(context.Background())
	require.NoError(t, err)

	want := &firehose.Document{
		DeliveryStream: firehose.DeliveryStream{
			Name:        "orders",
			Destination: "extended_s3",
			ExtendedS3: firehose.ExtendedS3{
				RoleARN:           "arn:aws:iam::123456789012:role/firehose-orders",
				BucketARN:         "arn:aws:s3:::orders-bucket",
				BufferingSize:     5,
				BufferingInterval: 300,
				CompressionFormat: "UNCOMPRESSED",
				S3BackupMode:      "Disabled",
				Processing: firehose.Processing{
					Enabled: false,
				},
			},
		},
	}

	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("unexpected document: %s", diff)
	}
}

func TestResolveInvalidConfig(t *testing.T) {
	r := &Resolver{
		Config: config.DeliveryStream{
			Name: "orders",
		},
	}

	_, err := r.Resolve(context.Background())
	require.Error(t, err)
}

func TestResolveCreatedRoleNeedsNoLookup(t *testing.T) {
	// Declaring the delivery role must not consult the metadata lookups.
	// The document references the role through a pseudo parameter that
	// the provisioning engine substitutes at apply time.
	r := &Resolver{
		Config: config.DeliveryStream{
			Name:      "orders",
			BucketARN: "arn:aws:s3:::orders-bucket",
			Role: config.Role{
				Create: true,
			},
		},
	}

	doc, err := r.Resolve(context.Background())
	require.NoError(t, err)

	require.Equal(t, "arn:aws:iam::${aws:accountId}:role/firehose-orders", doc.DeliveryStream.ExtendedS3.RoleARN)

	require.NotNil(t, doc.DeliveryRole)
	require.Equal(t, "firehose-orders", doc.DeliveryRole.Name)
	require.Equal(t, firehose.FirehoseAssumeRolePolicy, doc.DeliveryRole.AssumeRolePolicyDocument)
}

func TestResolveNamedRole(t *testing.T) {
	r := &Resolver{
		Config: config.DeliveryStream{
			Name:      "orders",
			BucketARN: "arn:aws:s3:::orders-bucket",
			Role: config.Role{
				Create: true,
				Name:   "orders-delivery",
			},
		},
	}

	doc, err := r.Resolve(context.Background())
	require.NoError(t, err)

	require.Equal(t, "orders-delivery", doc.DeliveryRole.Name)
	require.Equal(t, "arn:aws:iam::${aws:accountId}:role/orders-delivery", doc.DeliveryStream.ExtendedS3.RoleARN)
}

func TestResolveBackupLogResources(t *testing.T) {
	r := &Resolver{
		Config: config.DeliveryStream{
			Name:      "s1",
			BucketARN: "arn:aws:s3:::s1-bucket",
			Role: config.Role{
				Create: true,
			},
			Backup: config.Backup{
				Enabled:         true,
				BucketARN:       "arn:aws:s3:::s1-backup",
				UseFirehoseRole: true,
				Logging: config.BackupLogging{
					Enabled:        true,
					CreateLogGroup: true,
				},
			},
		},
	}

	doc, err := r.Resolve(context.Background())
	require.NoError(t, err)

	require.Equal(t, "Enabled", doc.DeliveryStream.ExtendedS3.S3BackupMode)

	require.NotNil(t, doc.BackupLogGroup)
	require.Equal(t, "/aws/kinesisfirehose/s1", doc.BackupLogGroup.Name)

	require.NotNil(t, doc.BackupLogStream)
	require.Equal(t, "BackupDelivery", doc.BackupLogStream.Name)
	require.Equal(t, "/aws/kinesisfirehose/s1", doc.BackupLogStream.LogGroupName)
}

func TestResolveBackupWithoutLogCreation(t *testing.T) {
	r := &Resolver{
		Config: config.DeliveryStream{
			Name:      "s1",
			BucketARN: "arn:aws:s3:::s1-bucket",
			Role: config.Role{
				ARN: "arn:aws:iam::123456789012:role/firehose-s1",
			},
			Backup: config.Backup{
				Enabled:         true,
				BucketARN:       "arn:aws:s3:::s1-backup",
				UseFirehoseRole: true,
				Logging: config.BackupLogging{
					Enabled: true,
				},
			},
		},
	}

	doc, err := r.Resolve(context.Background())
	require.NoError(t, err)

	require.NotNil(t, doc.DeliveryStream.ExtendedS3.S3Backup)
	require.Nil(t, doc.BackupLogGroup)
	require.Nil(t, doc.BackupLogStream)
}

func TestResolveEncryption(t *testing.T) {
	r := &Resolver{
		Config: config.DeliveryStream{
			Name:      "orders",
			BucketARN: "arn:aws:s3:::orders-bucket",
			Role: config.Role{
				ARN: "arn:aws:iam::123456789012:role/firehose-orders",
			},
			Encryption: config.Encryption{
				Enabled: true,
			},
		},
	}

	doc, err := r.Resolve(context.Background())
	require.NoError(t, err)

	require.Equal(t, &firehose.ServerSideEncryption{
		Enabled: true,
		KeyType: "AWS_OWNED_CMK",
	}, doc.DeliveryStream.ServerSideEncryption)
}

func TestResolveDynamicPartitioningRetryDefault(t *testing.T) {
	r := &Resolver{
		Config: config.DeliveryStream{
			Name:      "orders",
			BucketARN: "arn:aws:s3:::orders-bucket",
			Role: config.Role{
				ARN: "arn:aws:iam::123456789012:role/firehose-orders",
			},
			DynamicPartitioning: config.DynamicPartitioning{
				Enabled: true,
			},
		},
	}

	doc, err := r.Resolve(context.Background())
	require.NoError(t, err)

	dp := doc.DeliveryStream.ExtendedS3.DynamicPartitioning
	require.True(t, dp.Enabled)
	require.Equal(t, 300, dp.RetryDuration)

	require.True(t, doc.DeliveryStream.ExtendedS3.Processing.Enabled)
}

func TestResolveFull(t *testing.T) {
	meta := &fakeMetadata{accountID: "123456789012", region: "us-east-1"}

	r := &Resolver{
		Config: config.DeliveryStream{
			Name:              "orders",
			BucketARN:         "arn:aws:s3:::orders-bucket",
			Prefix:            "data/",
			ErrorOutputPrefix: "errors/",
			CompressionFormat: "GZIP",
			Role: config.Role{
				Create: true,
			},
			Processing: config.Processing{
				LambdaARN:               "arn:aws:lambda:us-east-1:123456789012:function:transform",
				MetadataExtractionQuery: "{customer_id: .customer_id}",
			},
			DynamicPartitioning: config.DynamicPartitioning{
				Enabled:         true,
				AppendDelimiter: true,
			},
			Backup: config.Backup{
				Enabled:         true,
				BucketARN:       "arn:aws:s3:::orders-backup",
				UseFirehoseRole: true,
				Logging: config.BackupLogging{
					Enabled:        true,
					CreateLogGroup: true,
				},
			},
			FormatConversion: config.FormatConversion{
				Enabled:      true,
				InputFormat:  config.InputFormatOpenX,
				OutputFormat: config.OutputFormatParquet,
				Schema: config.SchemaConfig{
					DatabaseName:    "analytics",
					TableName:       "orders",
					UseFirehoseRole: true,
				},
			},
		},
		Meta: meta,
	}

	doc, err := r.Resolve(context.Background())
	require.NoError(t, err)

	roleRef := "arn:aws:iam::${aws:accountId}:role/firehose-orders"

	s3 := doc.DeliveryStream.ExtendedS3
	require.Equal(t, roleRef, s3.RoleARN)
	require.Equal(t, roleRef, s3.S3Backup.RoleARN)
	require.Equal(t, roleRef, s3.DataFormatConversion.SchemaConfiguration.RoleARN)

	var types []string
	for _, p := range s3.Processing.Processors {
		types = append(types, p.Type)
	}
	require.Equal(t, []string{
		firehose.ProcessorLambda,
		firehose.ProcessorMetadataExtraction,
		firehose.ProcessorAppendDelimiterToRecord,
	}, types)

	require.Equal(t, "123456789012", s3.DataFormatConversion.SchemaConfiguration.CatalogID)
	require.Equal(t, "us-east-1", s3.DataFormatConversion.SchemaConfiguration.Region)
	require.Equal(t, 1, meta.accountIDCalls)
	require.Equal(t, 1, meta.regionCalls)

	require.NotNil(t, doc.DeliveryRole)
	require.NotNil(t, doc.BackupLogGroup)
	require.NotNil(t, doc.BackupLogStream)
}
