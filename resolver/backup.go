package resolver

import (
	"github.com/flowtide/firehosegen/config"
	"github.com/flowtide/firehosegen/firehose"
)

// DefaultLogGroupPrefix is prepended to the stream name when no log
// group name is supplied.
const DefaultLogGroupPrefix = "/aws/kinesisfirehose/"

// DefaultLogStreamName is the log stream used when no log group name is
// supplied.
const DefaultLogStreamName = "BackupDelivery"

// resolveBackup resolves the backup block and the backup mode of the
// destination. When backup is disabled the block is absent and the mode
// is Disabled; no backup field is resolved, role included.
func resolveBackup(ds config.DeliveryStream, deliveryRoleARN string) (*firehose.S3Backup, string) {
	b := ds.Backup

	if !b.Enabled {
		return nil, firehose.BackupModeDisabled
	}

	roleARN := b.RoleARN
	if b.UseFirehoseRole {
		roleARN = deliveryRoleARN
	}

	logGroupName := b.Logging.LogGroupName
	logStreamName := b.Logging.LogStreamName
	// Both defaults key off the group name being unset. A supplied
	// stream name is ignored when the group name is absent.
	if logGroupName == "" {
		logGroupName = DefaultLogGroupPrefix + ds.Name
		logStreamName = DefaultLogStreamName
	}

	return &firehose.S3Backup{
		RoleARN:           roleARN,
		BucketARN:         b.BucketARN,
		Prefix:            b.Prefix,
		ErrorOutputPrefix: b.ErrorOutputPrefix,
		BufferingSize:     intOrDefault(b.BufferingSize, config.DefaultBufferingSize),
		BufferingInterval: intOrDefault(b.BufferingInterval, config.DefaultBufferingInterval),
		CompressionFormat: stringOrDefault(b.CompressionFormat, config.DefaultCompressionFormat),
		CloudWatchLogging: firehose.CloudWatchLogging{
			Enabled:       b.Logging.Enabled,
			LogGroupName:  logGroupName,
			LogStreamName: logStreamName,
		},
	}, firehose.BackupModeEnabled
}
