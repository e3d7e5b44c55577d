package impl

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/smartcv/go-smartcv/internal/smartcv"
	"github.com/smartcv/go-smartcv/pkg/metrics"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/smartcv/go-smartcv/pkg/uimanager"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/metric/instrument"
)

// InstrumentedGateway is a SmartCV implementation with instrumentation.
type InstrumentedGateway struct {
	gateway          smartcv.SmartCV
	callCount        instrument.Int64Counter
	latencyHistogram instrument.Int64Histogram
}

type recordData struct {
	method  string
	address string
	success bool
	latency int64
}

// NewInstrumentedGateway creates a new InstrumentedGateway.
func NewInstrumentedGateway(gateway smartcv.SmartCV) (smartcv.SmartCV, error) {
	meter := global.MeterProvider().Meter("smartcv")
	callCount, err := meter.Int64Counter("smartcv.gateway.call.count")
	if err != nil {
		return nil, fmt.Errorf("creating call count metric: %s", err)
	}
	latencyHistogram, err := meter.Int64Histogram("smartcv.gateway.call.latency")
	if err != nil {
		return nil, fmt.Errorf("creating latency histogram: %s", err)
	}

	return &InstrumentedGateway{gateway, callCount, latencyHistogram}, nil
}

// FundUser implements FundUser.
func (g *InstrumentedGateway) FundUser(ctx context.Context, user common.Address) (smartcv.FundUserResponse, error) {
	start := time.Now()
	resp, err := g.gateway.FundUser(ctx, user)
	g.record(ctx, recordData{"FundUser", user.Hex(), err == nil, time.Since(start).Milliseconds()})
	return resp, err
}

// WhitelistEntity implements WhitelistEntity.
func (g *InstrumentedGateway) WhitelistEntity(ctx context.Context, entity common.Address) (smartcv.TxResponse, error) {
	start := time.Now()
	resp, err := g.gateway.WhitelistEntity(ctx, entity)
	g.record(ctx, recordData{"WhitelistEntity", entity.Hex(), err == nil, time.Since(start).Milliseconds()})
	return resp, err
}

// StoreCertificate implements StoreCertificate.
func (g *InstrumentedGateway) StoreCertificate(
	ctx context.Context,
	company common.Address,
	hash uimanager.CertificateHash,
	cid string,
) (smartcv.TxResponse, error) {
	start := time.Now()
	resp, err := g.gateway.StoreCertificate(ctx, company, hash, cid)
	g.record(ctx, recordData{"StoreCertificate", company.Hex(), err == nil, time.Since(start).Milliseconds()})
	return resp, err
}

// Transfer implements Transfer.
func (g *InstrumentedGateway) Transfer(
	ctx context.Context,
	from common.Address,
	to common.Address,
	value *big.Int,
) (smartcv.TxResponse, error) {
	start := time.Now()
	resp, err := g.gateway.Transfer(ctx, from, to, value)
	g.record(ctx, recordData{"Transfer", from.Hex(), err == nil, time.Since(start).Milliseconds()})
	return resp, err
}

// VerifyCertificate implements VerifyCertificate.
func (g *InstrumentedGateway) VerifyCertificate(
	ctx context.Context,
	verifier common.Address,
	hash uimanager.CertificateHash,
) (smartcv.VerifyResponse, error) {
	start := time.Now()
	resp, err := g.gateway.VerifyCertificate(ctx, verifier, hash)
	g.record(ctx, recordData{"VerifyCertificate", verifier.Hex(), err == nil, time.Since(start).Milliseconds()})
	return resp, err
}

// GetBalance implements GetBalance.
func (g *InstrumentedGateway) GetBalance(ctx context.Context, user common.Address) (smartcv.BalanceResponse, error) {
	return g.gateway.GetBalance(ctx, user)
}

// GetCertificate implements GetCertificate.
func (g *InstrumentedGateway) GetCertificate(
	ctx context.Context,
	hash uimanager.CertificateHash,
) (smartcv.CertificateResponse, error) {
	return g.gateway.GetCertificate(ctx, hash)
}

// QueueState implements QueueState.
func (g *InstrumentedGateway) QueueState(ctx context.Context, addr common.Address) (txqueue.QueueState, error) {
	return g.gateway.QueueState(ctx, addr)
}

func (g *InstrumentedGateway) record(ctx context.Context, data recordData) {
	attributes := append([]attribute.KeyValue{
		{Key: "method", Value: attribute.StringValue(data.method)},
		{Key: "address", Value: attribute.StringValue(data.address)},
		{Key: "success", Value: attribute.BoolValue(data.success)},
	}, metrics.BaseAttrs...)

	g.callCount.Add(ctx, 1, attributes...)
	g.latencyHistogram.Record(ctx, data.latency, attributes...)
}
