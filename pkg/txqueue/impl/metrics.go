package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/smartcv/go-smartcv/pkg/metrics"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/metric/instrument"
	"go.opentelemetry.io/otel/metric/unit"
)

func (m *Manager) initMetrics() error {
	meter := global.MeterProvider().Meter("smartcv")
	m.mBaseLabels = append([]attribute.KeyValue{
		attribute.String("master_address", m.master.String()),
	}, metrics.BaseAttrs...)

	mNonce, err := meter.Int64ObservableGauge("smartcv.txqueue.nonce")
	if err != nil {
		return fmt.Errorf("creating nonce metric: %s", err)
	}
	mDepth, err := meter.Int64ObservableGauge("smartcv.txqueue.depth")
	if err != nil {
		return fmt.Errorf("creating depth metric: %s", err)
	}
	m.mSubmitted, err = meter.Int64Counter("smartcv.txqueue.submitted")
	if err != nil {
		return fmt.Errorf("creating submitted counter metric: %s", err)
	}
	m.mFailed, err = meter.Int64Counter("smartcv.txqueue.failed")
	if err != nil {
		return fmt.Errorf("creating failed counter metric: %s", err)
	}
	m.mLatency, err = meter.Int64Histogram(
		"smartcv.txqueue.latency",
		instrument.WithUnit(string(unit.Milliseconds)),
		instrument.WithDescription("Time from an operation's turn to its receipt"),
	)
	if err != nil {
		return fmt.Errorf("creating latency metric: %s", err)
	}

	if _, err = meter.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			for _, s := range m.snapshot() {
				attrs := append([]attribute.KeyValue{
					attribute.String("wallet_address", s.Address.String()),
				}, m.mBaseLabels...)
				if s.NextNonce != nil {
					o.ObserveInt64(mNonce, int64(*s.NextNonce), attrs...)
				}
				o.ObserveInt64(mDepth, s.Depth, attrs...)
			}
			return nil
		}, []instrument.Asynchronous{
			mNonce,
			mDepth,
		}...); err != nil {
		return fmt.Errorf("registering async metric callback: %s", err)
	}

	return nil
}

func (m *Manager) snapshot() []txqueue.QueueState {
	m.mu.Lock()
	queues := make([]*walletQueue, 0, len(m.queues))
	for _, q := range m.queues {
		queues = append(queues, q)
	}
	m.mu.Unlock()

	states := make([]txqueue.QueueState, 0, len(queues))
	for _, q := range queues {
		states = append(states, q.state())
	}
	return states
}

func (m *Manager) record(sender common.Address, start time.Time, err error) {
	attrs := append([]attribute.KeyValue{
		attribute.String("wallet_address", sender.String()),
		attribute.Bool("success", err == nil),
	}, m.mBaseLabels...)

	// The caller's ctx may be canceled, the operation is still accounted for.
	ctx := context.Background()
	m.mLatency.Record(ctx, time.Since(start).Milliseconds(), attrs...)
	if err == nil {
		m.mSubmitted.Add(ctx, 1, attrs...)
		return
	}
	m.mFailed.Add(ctx, 1, append(attrs, attribute.String("reason", failureReason(err)))...)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, txqueue.ErrFactory):
		return "factory"
	case errors.Is(err, txqueue.ErrTransactionReverted):
		return "reverted"
	case errors.Is(err, txqueue.ErrQueueClosed):
		return "closed"
	default:
		return "network"
	}
}
