package resolver

import (
	"strconv"

	"github.com/flowtide/firehosegen/config"
	"github.com/flowtide/firehosegen/firehose"
)

// buildProcessing assembles the ordered processor chain.
//
// The candidate order is fixed by the pipeline semantics: transform,
// extract metadata, append delimiter, deaggregate. Every candidate is
// additionally guarded by the chain-wide enable condition, so disabling
// processing empties the chain regardless of the per-step settings.
func buildProcessing(ds config.DeliveryStream) firehose.Processing {
	enabled := ds.Processing.LambdaARN != "" || ds.DynamicPartitioning.Enabled

	var processors []firehose.Processor

	if enabled && ds.Processing.LambdaARN != "" {
		processors = append(processors, lambdaProcessor(ds.Processing))
	}

	if enabled && ds.Processing.MetadataExtractionQuery != "" {
		processors = append(processors, metadataExtractionProcessor(ds.Processing.MetadataExtractionQuery))
	}

	if enabled && ds.DynamicPartitioning.AppendDelimiter {
		processors = append(processors, firehose.Processor{
			Type: firehose.ProcessorAppendDelimiterToRecord,
		})
	}

	if enabled && ds.DynamicPartitioning.Deaggregation.Enabled {
		processors = append(processors, deaggregationProcessor(ds.DynamicPartitioning.Deaggregation))
	}

	return firehose.Processing{
		Enabled:    enabled,
		Processors: processors,
	}
}

func lambdaProcessor(p config.Processing) firehose.Processor {
	return firehose.Processor{
		Type: firehose.ProcessorLambda,
		Parameters: []firehose.Parameter{
			{Name: firehose.ParameterLambdaARN, Value: p.LambdaARN},
			{Name: firehose.ParameterBufferSizeInMBs, Value: strconv.Itoa(intOrDefault(p.LambdaBufferingSize, config.DefaultLambdaBufferingSize))},
			{Name: firehose.ParameterBufferIntervalInSeconds, Value: strconv.Itoa(intOrDefault(p.LambdaBufferingInterval, config.DefaultLambdaBufferingInterval))},
			{Name: firehose.ParameterNumberOfRetries, Value: strconv.Itoa(intOrDefault(p.LambdaRetries, config.DefaultLambdaRetries))},
		},
	}
}

func metadataExtractionProcessor(query string) firehose.Processor {
	return firehose.Processor{
		Type: firehose.ProcessorMetadataExtraction,
		Parameters: []firehose.Parameter{
			{Name: firehose.ParameterJSONParsingEngine, Value: firehose.JSONParsingEngineJQ},
			{Name: firehose.ParameterMetadataExtractionQuery, Value: query},
		},
	}
}

// deaggregationProcessor emits exactly one parameter shape: JSON
// sub-records carry no delimiter, everything else carries one.
func deaggregationProcessor(d config.Deaggregation) firehose.Processor {
	subType := stringOrDefault(d.SubRecordType, config.SubRecordTypeJSON)

	if subType == config.SubRecordTypeJSON {
		return firehose.Processor{
			Type: firehose.ProcessorRecordDeAggregation,
			Parameters: []firehose.Parameter{
				{Name: firehose.ParameterSubRecordType, Value: subType},
			},
		}
	}

	return firehose.Processor{
		Type: firehose.ProcessorRecordDeAggregation,
		Parameters: []firehose.Parameter{
			{Name: firehose.ParameterSubRecordType, Value: subType},
			{Name: firehose.ParameterDelimiter, Value: d.Delimiter},
		},
	}
}
