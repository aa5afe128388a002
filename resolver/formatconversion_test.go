package resolver

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/flowtide/firehosegen/config"
	"github.com/flowtide/firehosegen/firehose"
)

// fakeMetadata counts lookups so tests can assert which defaults
// actually consulted it.
type fakeMetadata struct {
	accountID string
	region    string

	accountIDCalls int
	regionCalls    int
}

func (m *fakeMetadata) AccountID(ctx context.Context) (string, error) {
	m.accountIDCalls++
	return m.accountID, nil
}

func (m *fakeMetadata) Region(ctx context.Context) (string, error) {
	m.regionCalls++
	return m.region, nil
}

func TestResolveFormatConversionDisabled(t *testing.T) {
	meta := &fakeMetadata{accountID: "123456789012", region: "us-east-1"}

	ds := config.DeliveryStream{
		Name: "orders",
		FormatConversion: config.FormatConversion{
			Schema: config.SchemaConfig{
				DatabaseName: "analytics",
				TableName:    "orders",
			},
		},
	}

	conversion, err := resolveFormatConversion(context.Background(), ds, "role", meta)
	require.NoError(t, err)

	require.Nil(t, conversion)
	require.Zero(t, meta.accountIDCalls)
	require.Zero(t, meta.regionCalls)
}

func TestResolveFormatConversionDefaults(t *testing.T) {
	meta := &fakeMetadata{accountID: "123456789012", region: "us-east-1"}

	ds := config.DeliveryStream{
		Name: "orders",
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
	}

	conversion, err := resolveFormatConversion(context.Background(), ds, "arn:aws:iam::123456789012:role/delivery", meta)
	require.NoError(t, err)

	want := &firehose.DataFormatConversion{
		Enabled: true,
		InputFormat: firehose.InputFormat{
			OpenXJSON: &firehose.OpenXJSONSerDe{
				CaseInsensitive: true,
			},
		},
		OutputFormat: firehose.OutputFormat{
			Parquet: &firehose.ParquetSerDe{
				Compression:   "SNAPPY",
				WriterVersion: "V1",
			},
		},
		SchemaConfiguration: firehose.SchemaConfiguration{
			CatalogID:    "123456789012",
			DatabaseName: "analytics",
			TableName:    "orders",
			Region:       "us-east-1",
			RoleARN:      "arn:aws:iam::123456789012:role/delivery",
			VersionID:    "LATEST",
		},
	}

	if diff := cmp.Diff(want, conversion); diff != "" {
		t.Errorf("unexpected conversion: %s", diff)
	}

	require.Equal(t, 1, meta.accountIDCalls)
	require.Equal(t, 1, meta.regionCalls)
}

func TestResolveFormatConversionExplicitSchemaSkipsLookups(t *testing.T) {
	meta := &fakeMetadata{accountID: "123456789012", region: "us-east-1"}

	ds := config.DeliveryStream{
		Name: "orders",
		FormatConversion: config.FormatConversion{
			Enabled:      true,
			InputFormat:  config.InputFormatHive,
			OutputFormat: config.OutputFormatORC,
			Schema: config.SchemaConfig{
				CatalogID:    "999999999999",
				Region:       "eu-west-1",
				DatabaseName: "analytics",
				TableName:    "orders",
				RoleARN:      "arn:aws:iam::999999999999:role/glue",
			},
		},
	}

	conversion, err := resolveFormatConversion(context.Background(), ds, "unused", meta)
	require.NoError(t, err)

	require.Equal(t, "999999999999", conversion.SchemaConfiguration.CatalogID)
	require.Equal(t, "eu-west-1", conversion.SchemaConfiguration.Region)
	require.Equal(t, "arn:aws:iam::999999999999:role/glue", conversion.SchemaConfiguration.RoleARN)
	require.Zero(t, meta.accountIDCalls)
	require.Zero(t, meta.regionCalls)
}

func TestResolveFormatConversionNilMetadata(t *testing.T) {
	ds := config.DeliveryStream{
		Name: "orders",
		FormatConversion: config.FormatConversion{
			Enabled: true,
			Schema: config.SchemaConfig{
				DatabaseName: "analytics",
				TableName:    "orders",
			},
		},
	}

	_, err := resolveFormatConversion(context.Background(), ds, "role", nil)
	require.Error(t, err)
}

func TestResolveInputFormat(t *testing.T) {
	no := false

	tests := []struct {
		name string
		in   config.FormatConversion
		want firehose.InputFormat
	}{
		{
			name: "openx with options",
			in: config.FormatConversion{
				InputFormat: config.InputFormatOpenX,
				OpenX: config.OpenXJSONOptions{
					CaseInsensitive:          &no,
					ConvertDotsToUnderscores: true,
					ColumnToJSONKeyMappings:  map[string]string{"ts": "timestamp"},
				},
			},
			want: firehose.InputFormat{
				OpenXJSON: &firehose.OpenXJSONSerDe{
					ConvertDotsToUnderscores: true,
					ColumnToJSONKeyMappings:  map[string]string{"ts": "timestamp"},
				},
			},
		},
		{
			name: "hive with timestamp formats",
			in: config.FormatConversion{
				InputFormat: config.InputFormatHive,
				Hive: config.HiveJSONOptions{
					TimestampFormats: []string{"millis"},
				},
			},
			want: firehose.InputFormat{
				HiveJSON: &firehose.HiveJSONSerDe{
					TimestampFormats: []string{"millis"},
				},
			},
		},
		{
			name: "unknown yields an empty block",
			in: config.FormatConversion{
				InputFormat: "AVRO",
			},
			want: firehose.InputFormat{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveInputFormat(tc.in)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected input format: %s", diff)
			}
		})
	}
}

func TestResolveOutputFormat(t *testing.T) {
	tests := []struct {
		name string
		in   config.FormatConversion
		want firehose.OutputFormat
	}{
		{
			name: "parquet with overrides",
			in: config.FormatConversion{
				OutputFormat: config.OutputFormatParquet,
				Parquet: config.ParquetOptions{
					Compression:                 "GZIP",
					BlockSizeBytes:              268435456,
					EnableDictionaryCompression: true,
					WriterVersion:               "V2",
				},
			},
			want: firehose.OutputFormat{
				Parquet: &firehose.ParquetSerDe{
					Compression:                 "GZIP",
					BlockSizeBytes:              268435456,
					EnableDictionaryCompression: true,
					WriterVersion:               "V2",
				},
			},
		},
		{
			name: "orc defaults",
			in: config.FormatConversion{
				OutputFormat: config.OutputFormatORC,
			},
			want: firehose.OutputFormat{
				ORC: &firehose.ORCSerDe{
					Compression:   "SNAPPY",
					FormatVersion: "V0_12",
				},
			},
		},
		{
			name: "unknown yields an empty block",
			in: config.FormatConversion{
				OutputFormat: "AVRO",
			},
			want: firehose.OutputFormat{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveOutputFormat(tc.in)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected output format: %s", diff)
			}
		})
	}
}
