package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/metric/instrument"
	"go.opentelemetry.io/otel/metric/unit"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregation"
)

// BaseAttrs contains attributes that should be added in all exported metrics.
var BaseAttrs []attribute.KeyValue

// Shutdown stops the metrics endpoint and the meter provider.
type Shutdown func(ctx context.Context) error

// SetupInstrumentation installs the global meter provider and serves /metrics on prometheusAddr.
// An empty prometheusAddr installs the provider without serving it.
func SetupInstrumentation(prometheusAddr string, serviceName string) (Shutdown, error) {
	BaseAttrs = []attribute.KeyValue{attribute.String("service_name", serviceName)}

	exporter, err := otelprom.New(otelprom.WithAggregationSelector(aggregatorSelector))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %s", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	global.SetMeterProvider(provider)

	var server *http.Server
	if prometheusAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server = &http.Server{
			Addr:              prometheusAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Str("addr", prometheusAddr).Msg("metrics endpoint stopped")
			}
		}()
	}

	if err := startCollectingRuntimeMetrics(); err != nil {
		return nil, fmt.Errorf("start collecting Go runtime metrics: %s", err)
	}

	return func(ctx context.Context) error {
		if server != nil {
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutting down metrics endpoint: %s", err)
			}
		}
		if err := provider.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down meter provider: %s", err)
		}
		return nil
	}, nil
}

type runtimeGauge struct {
	name        string
	unit        unit.Unit
	description string
	observe     func(startTime time.Time, ms *runtime.MemStats) int64
}

var runtimeGauges = []runtimeGauge{
	{
		name:        "runtime.uptime",
		unit:        unit.Milliseconds,
		description: "Milliseconds since application was initialized",
		observe: func(startTime time.Time, _ *runtime.MemStats) int64 {
			return time.Since(startTime).Milliseconds()
		},
	},
	{
		name:        "process.runtime.go.goroutines",
		unit:        unit.Dimensionless,
		description: "Number of goroutines that currently exist",
		observe: func(time.Time, *runtime.MemStats) int64 {
			return int64(runtime.NumGoroutine())
		},
	},
	{
		name:        "process.runtime.go.mem.heap_inuse",
		unit:        unit.Bytes,
		description: "Bytes in in-use spans",
		observe: func(_ time.Time, ms *runtime.MemStats) int64 {
			return int64(ms.HeapInuse)
		},
	},
	{
		name:        "process.runtime.go.gc.count",
		unit:        unit.Dimensionless,
		description: "Number of completed garbage collection cycles",
		observe: func(_ time.Time, ms *runtime.MemStats) int64 {
			return int64(ms.NumGC)
		},
	},
}

func startCollectingRuntimeMetrics() error {
	meter := global.MeterProvider().Meter("runtime")

	observables := make([]instrument.Int64ObservableGauge, len(runtimeGauges))
	asyncs := make([]instrument.Asynchronous, len(runtimeGauges))
	for i, g := range runtimeGauges {
		gauge, err := meter.Int64ObservableGauge(
			g.name,
			instrument.WithUnit(string(g.unit)),
			instrument.WithDescription(g.description),
		)
		if err != nil {
			return fmt.Errorf("creating %s gauge: %s", g.name, err)
		}
		observables[i] = gauge
		asyncs[i] = gauge
	}

	var (
		lastMemStats time.Time
		memStats     runtime.MemStats
	)
	startTime := time.Now()
	// ReadMemStats stops the world, so it's refreshed at most every 15 seconds.
	_, err := meter.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			if now := time.Now(); now.Sub(lastMemStats) >= 15*time.Second {
				runtime.ReadMemStats(&memStats)
				lastMemStats = now
			}
			for i, g := range runtimeGauges {
				o.ObserveInt64(observables[i], g.observe(startTime, &memStats), BaseAttrs...)
			}
			return nil
		},
		asyncs...,
	)
	if err != nil {
		return fmt.Errorf("registering callback: %s", err)
	}

	return nil
}

func aggregatorSelector(ik sdkmetric.InstrumentKind) aggregation.Aggregation {
	switch ik {
	case sdkmetric.InstrumentKindCounter, sdkmetric.InstrumentKindUpDownCounter,
		sdkmetric.InstrumentKindObservableCounter, sdkmetric.InstrumentKindObservableUpDownCounter:
		return aggregation.Sum{}
	case sdkmetric.InstrumentKindObservableGauge:
		return aggregation.LastValue{}
	case sdkmetric.InstrumentKindHistogram:
		// Boundaries in milliseconds, from a local devnet block to a congested mainnet inclusion.
		return aggregation.ExplicitBucketHistogram{
			Boundaries: []float64{10, 50, 100, 500, 1000, 5000, 15000, 30000, 60000, 300000},
			NoMinMax:   false,
		}
	}
	panic("unknown instrument kind")
}
