package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregation"
)

func TestAggregatorSelector(t *testing.T) {
	t.Parallel()

	require.Equal(t, aggregation.Sum{}, aggregatorSelector(sdkmetric.InstrumentKindCounter))
	require.Equal(t, aggregation.Sum{}, aggregatorSelector(sdkmetric.InstrumentKindObservableUpDownCounter))
	require.Equal(t, aggregation.LastValue{}, aggregatorSelector(sdkmetric.InstrumentKindObservableGauge))

	histogram, ok := aggregatorSelector(sdkmetric.InstrumentKindHistogram).(aggregation.ExplicitBucketHistogram)
	require.True(t, ok)
	require.IsIncreasing(t, histogram.Boundaries)
	require.Equal(t, float64(300000), histogram.Boundaries[len(histogram.Boundaries)-1])

	require.Panics(t, func() { aggregatorSelector(sdkmetric.InstrumentKind(0)) })
}

func TestRuntimeGauges(t *testing.T) {
	t.Parallel()

	for _, g := range runtimeGauges {
		require.NotEmpty(t, g.name)
		require.NotEmpty(t, string(g.unit))
	}
	require.NoError(t, startCollectingRuntimeMetrics())
}
