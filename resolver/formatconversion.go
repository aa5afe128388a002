package resolver

import (
	"context"
	"fmt"

	"github.com/flowtide/firehosegen/config"
	"github.com/flowtide/firehosegen/firehose"
)

// resolveFormatConversion resolves the format-conversion block, or nil
// when the feature is disabled. The metadata lookups run only on the
// paths that need their value: an explicit catalog ID suppresses the
// account lookup, an explicit region suppresses the region lookup, and a
// disabled feature suppresses both.
func resolveFormatConversion(ctx context.Context, ds config.DeliveryStream, deliveryRoleARN string, meta Metadata) (*firehose.DataFormatConversion, error) {
	fc := ds.FormatConversion

	if !fc.Enabled {
		return nil, nil
	}

	catalogID := fc.Schema.CatalogID
	if catalogID == "" {
		if meta == nil {
			return nil, fmt.Errorf("metadata lookups are required to default the glue catalog ID")
		}

		id, err := meta.AccountID(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve caller account ID: %w", err)
		}

		catalogID = id
	}

	region := fc.Schema.Region
	if region == "" {
		if meta == nil {
			return nil, fmt.Errorf("metadata lookups are required to default the glue region")
		}

		r, err := meta.Region(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve region: %w", err)
		}

		region = r
	}

	roleARN := fc.Schema.RoleARN
	if fc.Schema.UseFirehoseRole {
		roleARN = deliveryRoleARN
	}

	return &firehose.DataFormatConversion{
		Enabled:      true,
		InputFormat:  resolveInputFormat(fc),
		OutputFormat: resolveOutputFormat(fc),
		SchemaConfiguration: firehose.SchemaConfiguration{
			CatalogID:    catalogID,
			DatabaseName: fc.Schema.DatabaseName,
			TableName:    fc.Schema.TableName,
			Region:       region,
			RoleARN:      roleARN,
			VersionID:    stringOrDefault(fc.Schema.VersionID, config.DefaultSchemaVersionID),
		},
	}, nil
}

// resolveInputFormat picks exactly one deserializer. An unrecognized
// choice yields an empty block.
func resolveInputFormat(fc config.FormatConversion) firehose.InputFormat {
	switch fc.InputFormat {
	case config.InputFormatOpenX:
		caseInsensitive := true
		if fc.OpenX.CaseInsensitive != nil {
			caseInsensitive = *fc.OpenX.CaseInsensitive
		}

		return firehose.InputFormat{
			OpenXJSON: &firehose.OpenXJSONSerDe{
				CaseInsensitive:          caseInsensitive,
				ConvertDotsToUnderscores: fc.OpenX.ConvertDotsToUnderscores,
				ColumnToJSONKeyMappings:  fc.OpenX.ColumnToJSONKeyMappings,
			},
		}
	case config.InputFormatHive:
		return firehose.InputFormat{
			HiveJSON: &firehose.HiveJSONSerDe{
				TimestampFormats: fc.Hive.TimestampFormats,
			},
		}
	default:
		return firehose.InputFormat{}
	}
}

// resolveOutputFormat picks exactly one serializer. An unrecognized
// choice yields an empty block.
func resolveOutputFormat(fc config.FormatConversion) firehose.OutputFormat {
	switch fc.OutputFormat {
	case config.OutputFormatParquet:
		return firehose.OutputFormat{
			Parquet: &firehose.ParquetSerDe{
				Compression:                 stringOrDefault(fc.Parquet.Compression, firehose.ParquetDefaultCompression),
				BlockSizeBytes:              fc.Parquet.BlockSizeBytes,
				PageSizeBytes:               fc.Parquet.PageSizeBytes,
				EnableDictionaryCompression: fc.Parquet.EnableDictionaryCompression,
				MaxPaddingBytes:             fc.Parquet.MaxPaddingBytes,
				WriterVersion:               stringOrDefault(fc.Parquet.WriterVersion, firehose.ParquetDefaultWriterVersion),
			},
		}
	case config.OutputFormatORC:
		return firehose.OutputFormat{
			ORC: &firehose.ORCSerDe{
				Compression:     stringOrDefault(fc.ORC.Compression, firehose.ORCDefaultCompression),
				BlockSizeBytes:  fc.ORC.BlockSizeBytes,
				StripeSizeBytes: fc.ORC.StripeSizeBytes,
				RowIndexStride:  fc.ORC.RowIndexStride,
				EnablePadding:   fc.ORC.EnablePadding,
				FormatVersion:   stringOrDefault(fc.ORC.FormatVersion, firehose.ORCDefaultFormatVersion),
			},
		}
	default:
		return firehose.OutputFormat{}
	}
}
