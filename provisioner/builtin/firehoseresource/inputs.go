package firehoseresource

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/firehose"

	fh "github.com/flowtide/firehosegen/firehose"
)

func extendedS3Configuration(s fh.ExtendedS3) *firehose.ExtendedS3DestinationConfiguration {
	cfg := &firehose.ExtendedS3DestinationConfiguration{
		RoleARN:   aws.String(s.RoleARN),
		BucketARN: aws.String(s.BucketARN),
		BufferingHints: &firehose.BufferingHints{
			SizeInMBs:         aws.Int64(int64(s.BufferingSize)),
			IntervalInSeconds: aws.Int64(int64(s.BufferingInterval)),
		},
		CompressionFormat:       aws.String(s.CompressionFormat),
		S3BackupMode:            aws.String(s.S3BackupMode),
		ProcessingConfiguration: processingConfiguration(s.Processing),
	}
	cfg.DataFormatConversionConfiguration = dataFormatConversionConfiguration(s.DataFormatConversion)

	if s.Prefix != "" {
		cfg.Prefix = aws.String(s.Prefix)
	}
	if s.ErrorOutputPrefix != "" {
		cfg.ErrorOutputPrefix = aws.String(s.ErrorOutputPrefix)
	}

	if s.DynamicPartitioning.Enabled {
		cfg.DynamicPartitioningConfiguration = &firehose.DynamicPartitioningConfiguration{
			Enabled: aws.Bool(true),
			RetryOptions: &firehose.RetryOptions{
				DurationInSeconds: aws.Int64(int64(s.DynamicPartitioning.RetryDuration)),
			},
		}
	}

	if b := s.S3Backup; b != nil {
		cfg.S3BackupConfiguration = s3BackupConfiguration(b)
	}

	return cfg
}

func s3BackupConfiguration(b *fh.S3Backup) *firehose.S3DestinationConfiguration {
	cfg := &firehose.S3DestinationConfiguration{
		RoleARN:   aws.String(b.RoleARN),
		BucketARN: aws.String(b.BucketARN),
		BufferingHints: &firehose.BufferingHints{
			SizeInMBs:         aws.Int64(int64(b.BufferingSize)),
			IntervalInSeconds: aws.Int64(int64(b.BufferingInterval)),
		},
		CompressionFormat: aws.String(b.CompressionFormat),
	}

	if b.Prefix != "" {
		cfg.Prefix = aws.String(b.Prefix)
	}
	if b.ErrorOutputPrefix != "" {
		cfg.ErrorOutputPrefix = aws.String(b.ErrorOutputPrefix)
	}

	if l := b.CloudWatchLogging; l.Enabled {
		cfg.CloudWatchLoggingOptions = &firehose.CloudWatchLoggingOptions{
			Enabled:       aws.Bool(true),
			LogGroupName:  aws.String(l.LogGroupName),
			LogStreamName: aws.String(l.LogStreamName),
		}
	}

	return cfg
}

func processingConfiguration(p fh.Processing) *firehose.ProcessingConfiguration {
	cfg := &firehose.ProcessingConfiguration{
		Enabled: aws.Bool(p.Enabled),
	}

	for _, proc := range p.Processors {
		sdkProc := &firehose.Processor{
			Type: aws.String(proc.Type),
		}
		for _, param := range proc.Parameters {
			sdkProc.Parameters = append(sdkProc.Parameters, &firehose.ProcessorParameter{
				ParameterName:  aws.String(param.Name),
				ParameterValue: aws.String(param.Value),
			})
		}
		cfg.Processors = append(cfg.Processors, sdkProc)
	}

	return cfg
}

func dataFormatConversionConfiguration(c *fh.DataFormatConversion) *firehose.DataFormatConversionConfiguration {
	if c == nil {
		return nil
	}

	return &firehose.DataFormatConversionConfiguration{
		Enabled: aws.Bool(c.Enabled),
		InputFormatConfiguration: &firehose.InputFormatConfiguration{
			Deserializer: deserializer(c.InputFormat),
		},
		OutputFormatConfiguration: &firehose.OutputFormatConfiguration{
			Serializer: serializer(c.OutputFormat),
		},
		SchemaConfiguration: schemaConfiguration(c.SchemaConfiguration),
	}
}

func deserializer(f fh.InputFormat) *firehose.Deserializer {
	d := &firehose.Deserializer{}

	if o := f.OpenXJSON; o != nil {
		serde := &firehose.OpenXJsonSerDe{
			CaseInsensitive:                    aws.Bool(o.CaseInsensitive),
			ConvertDotsInJsonKeysToUnderscores: aws.Bool(o.ConvertDotsToUnderscores),
		}
		if len(o.ColumnToJSONKeyMappings) > 0 {
			serde.ColumnToJsonKeyMappings = aws.StringMap(o.ColumnToJSONKeyMappings)
		}
		d.OpenXJsonSerDe = serde
	}

	if h := f.HiveJSON; h != nil {
		serde := &firehose.HiveJsonSerDe{}
		if len(h.TimestampFormats) > 0 {
			serde.TimestampFormats = aws.StringSlice(h.TimestampFormats)
		}
		d.HiveJsonSerDe = serde
	}

	return d
}

func serializer(f fh.OutputFormat) *firehose.Serializer {
	s := &firehose.Serializer{}

	if p := f.Parquet; p != nil {
		serde := &firehose.ParquetSerDe{
			Compression:                 aws.String(p.Compression),
			WriterVersion:               aws.String(p.WriterVersion),
			EnableDictionaryCompression: aws.Bool(p.EnableDictionaryCompression),
		}
		if p.BlockSizeBytes != 0 {
			serde.BlockSizeBytes = aws.Int64(int64(p.BlockSizeBytes))
		}
		if p.PageSizeBytes != 0 {
			serde.PageSizeBytes = aws.Int64(int64(p.PageSizeBytes))
		}
		if p.MaxPaddingBytes != 0 {
			serde.MaxPaddingBytes = aws.Int64(int64(p.MaxPaddingBytes))
		}
		s.ParquetSerDe = serde
	}

	if o := f.ORC; o != nil {
		serde := &firehose.OrcSerDe{
			Compression:   aws.String(o.Compression),
			FormatVersion: aws.String(o.FormatVersion),
			EnablePadding: aws.Bool(o.EnablePadding),
		}
		if o.BlockSizeBytes != 0 {
			serde.BlockSizeBytes = aws.Int64(int64(o.BlockSizeBytes))
		}
		if o.StripeSizeBytes != 0 {
			serde.StripeSizeBytes = aws.Int64(int64(o.StripeSizeBytes))
		}
		if o.RowIndexStride != 0 {
			serde.RowIndexStride = aws.Int64(int64(o.RowIndexStride))
		}
		s.OrcSerDe = serde
	}

	return s
}

func schemaConfiguration(s fh.SchemaConfiguration) *firehose.SchemaConfiguration {
	return &firehose.SchemaConfiguration{
		CatalogId:    aws.String(s.CatalogID),
		DatabaseName: aws.String(s.DatabaseName),
		TableName:    aws.String(s.TableName),
		Region:       aws.String(s.Region),
		RoleARN:      aws.String(s.RoleARN),
		VersionId:    aws.String(s.VersionID),
	}
}
