package balancetracker

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	logger "github.com/rs/zerolog/log"
	"github.com/smartcv/go-smartcv/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	"go.opentelemetry.io/otel/metric/instrument"
)

// BalanceReader reads the native balance of an account.
type BalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

var gwei = big.NewInt(1_000_000_000)

// BalanceTracker tracks the balance of the managed wallets and produces metrics.
// Running out of ether is the most common reason for a wallet queue to fail.
type BalanceTracker struct {
	checkInterval time.Duration
	client        BalanceReader
	addrs         []common.Address

	log zerolog.Logger

	mu sync.Mutex
	// gwei balance per wallet.
	balances map[common.Address]int64
	// consecutive failed checks.
	unhealthy int64
}

// NewBalanceTracker returns a *BalanceTracker.
func NewBalanceTracker(
	client BalanceReader,
	addrs []common.Address,
	checkInterval time.Duration,
) (*BalanceTracker, error) {
	t := &BalanceTracker{
		log: logger.With().
			Str("component", "balancetracker").
			Logger(),
		checkInterval: checkInterval,
		client:        client,
		addrs:         addrs,
		balances:      make(map[common.Address]int64, len(addrs)),
	}
	if err := t.initMetrics(); err != nil {
		return nil, fmt.Errorf("initializing metrics: %s", err)
	}

	return t, nil
}

// Run checks balances until the provided ctx is canceled.
func (t *BalanceTracker) Run(ctx context.Context) {
	t.log.Info().Int("wallets", len(t.addrs)).Msg("starting balance tracker...")

	if err := t.checkBalances(ctx); err != nil {
		t.log.Error().Err(err).Msg("check balance failed")
	}

	checkInterval := t.checkInterval
	for {
		select {
		case <-ctx.Done():
			t.log.Info().Msg("closing gracefully...")
			return
		case <-time.After(checkInterval):
			if err := t.checkBalances(ctx); err != nil {
				t.log.Error().Err(err).Msg("check balance failed")
				checkInterval = time.Minute
			} else {
				checkInterval = t.checkInterval
			}
		}
	}
}

// Balance returns the last observed balance in gwei.
func (t *BalanceTracker) Balance(addr common.Address) (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.balances[addr]
	return b, ok
}

func (t *BalanceTracker) checkBalances(ctx context.Context) error {
	ctx, cls := context.WithTimeout(ctx, time.Second*15)
	defer cls()

	for _, addr := range t.addrs {
		weiBalance, err := t.client.BalanceAt(ctx, addr, nil)
		if err != nil {
			t.mu.Lock()
			t.unhealthy++
			t.mu.Unlock()
			return fmt.Errorf("get balance of %s: %s", addr.Hex(), err)
		}

		t.log.Debug().
			Str("balance", weiBalance.String()).
			Str("address", addr.Hex()).
			Msg("check balance")

		gweiBalance := new(big.Int).Quo(weiBalance, gwei)
		if !gweiBalance.IsInt64() {
			return fmt.Errorf("balance of %s overflows int64 gwei", addr.Hex())
		}

		t.mu.Lock()
		t.balances[addr] = gweiBalance.Int64()
		t.mu.Unlock()
	}

	t.mu.Lock()
	t.unhealthy = 0
	t.mu.Unlock()

	return nil
}

func (t *BalanceTracker) initMetrics() error {
	meter := global.MeterProvider().Meter("smartcv")

	mBalance, err := meter.Int64ObservableGauge("smartcv.wallettracker.balance.gwei")
	if err != nil {
		return fmt.Errorf("creating balance metric: %s", err)
	}
	mUnhealthy, err := meter.Int64ObservableGauge("smartcv.wallettracker.eth.client.unhealthy")
	if err != nil {
		return fmt.Errorf("creating eth client unhealthy metric: %s", err)
	}

	if _, err = meter.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			t.mu.Lock()
			defer t.mu.Unlock()
			for addr, balance := range t.balances {
				attrs := append([]attribute.KeyValue{
					attribute.String("wallet_address", addr.Hex()),
				}, metrics.BaseAttrs...)
				o.ObserveInt64(mBalance, balance, attrs...)
			}
			o.ObserveInt64(mUnhealthy, t.unhealthy, metrics.BaseAttrs...)

			return nil
		}, []instrument.Asynchronous{
			mBalance,
			mUnhealthy,
		}...); err != nil {
		return fmt.Errorf("registering async metric callback: %s", err)
	}

	return nil
}
