package impl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
	logger "github.com/rs/zerolog/log"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/instrument"
	"go.uber.org/atomic"
)

var _ txqueue.Queue = (*Manager)(nil)

// Node error messages meaning that the local nonce drifted from the chain's view.
var nonceDriftErrMsgs = []string{"nonce too low", "nonce too high", "invalid transaction nonce"}

// Manager implements a txqueue.Queue keeping one serialized chain of operations per sender.
type Manager struct {
	log    zerolog.Logger
	client txqueue.ChainClient
	miner  txqueue.Miner
	master common.Address

	mu     sync.Mutex
	queues map[common.Address]*walletQueue
	closed bool

	// metrics
	mBaseLabels []attribute.KeyValue
	mSubmitted  instrument.Int64Counter
	mFailed     instrument.Int64Counter
	mLatency    instrument.Int64Histogram
}

// nonceSource tells where the next nonce read comes from.
type nonceSource int

const (
	// nonceCached means nextNonce holds the nonce to use.
	nonceCached nonceSource = iota
	// nonceLatest reads the count of mined transactions.
	nonceLatest
	// noncePending reads the count including the node's mempool.
	noncePending
)

type walletQueue struct {
	addr common.Address

	// tail is closed once the last enqueued operation finished. Guarded by Manager.mu.
	tail chan struct{}
	// depth counts enqueued operations that didn't finish yet.
	depth atomic.Int64

	mu        sync.Mutex
	nextNonce uint64
	source    nonceSource
}

// NewManager creates a new Manager. Transactions enqueued with EnqueueMaster are sent by master.
// If miner isn't nil, it's called after each broadcast; only use it against development networks.
func NewManager(client txqueue.ChainClient, master common.Address, miner txqueue.Miner) (*Manager, error) {
	m := &Manager{
		log: logger.With().
			Str("component", "txqueue").
			Logger(),
		client: client,
		miner:  miner,
		master: master,
		queues: make(map[common.Address]*walletQueue),
	}
	if err := m.initMetrics(); err != nil {
		return nil, fmt.Errorf("initializing metrics: %s", err)
	}

	m.log.Info().
		Str("master", master.Hex()).
		Bool("mine_on_submit", miner != nil).
		Msg("transaction queue initialized")

	return m, nil
}

// Enqueue appends an operation to the sender's queue and returns immediately.
// The operation runs with ctx; if ctx is done when its turn arrives, it fails without reserving a nonce.
func (m *Manager) Enqueue(ctx context.Context, sender common.Address, factory txqueue.TxFactory) *txqueue.Pending {
	pending, assignNonce, resolve := txqueue.NewPending(sender)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		resolve(nil, &txqueue.TxError{Kind: txqueue.ErrQueueClosed, Sender: sender})
		return pending
	}
	q := m.queueFor(sender)
	prev := q.tail
	done := make(chan struct{})
	q.tail = done
	q.depth.Inc()
	m.mu.Unlock()

	go func() {
		defer close(done)
		defer q.depth.Dec()

		<-prev
		resolve(m.execute(ctx, q, factory, assignNonce))
	}()

	return pending
}

// EnqueueMaster appends an operation to the master wallet queue.
func (m *Manager) EnqueueMaster(ctx context.Context, factory txqueue.TxFactory) *txqueue.Pending {
	return m.Enqueue(ctx, m.master, factory)
}

// Submit enqueues an operation and waits for its receipt. An expired ctx surfaces as
// a TxError of kind ErrNetwork once the operation gave up.
func (m *Manager) Submit(
	ctx context.Context,
	sender common.Address,
	factory txqueue.TxFactory,
) (*types.Receipt, error) {
	return m.Enqueue(ctx, sender, factory).Result()
}

// Master returns the master wallet address.
func (m *Manager) Master() common.Address {
	return m.master
}

// State returns a snapshot of the sender's queue.
func (m *Manager) State(sender common.Address) (txqueue.QueueState, bool) {
	m.mu.Lock()
	q, ok := m.queues[sender]
	m.mu.Unlock()
	if !ok {
		return txqueue.QueueState{}, false
	}

	return q.state(), true
}

// Resync drops the cached nonce of the sender. The next operation reads it from the latest block.
// The call waits for the operations enqueued before it to finish.
func (m *Manager) Resync(ctx context.Context, sender common.Address) error {
	m.mu.Lock()
	q, ok := m.queues[sender]
	if !ok {
		m.mu.Unlock()
		return nil
	}
	prev := q.tail
	done := make(chan struct{})
	q.tail = done
	m.mu.Unlock()

	// Resync takes a slot in the chain so it never races with an executing operation.
	resynced := make(chan struct{})
	go func() {
		defer close(done)
		<-prev
		q.invalidate(nonceLatest)
		close(resynced)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-resynced:
		m.log.Info().Str("sender", sender.Hex()).Msg("nonce resync requested")
		return nil
	}
}

// Close stops accepting operations. Operations already enqueued still run.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func (m *Manager) queueFor(sender common.Address) *walletQueue {
	q, ok := m.queues[sender]
	if !ok {
		tail := make(chan struct{})
		close(tail)
		q = &walletQueue{
			addr:   sender,
			tail:   tail,
			source: nonceLatest,
		}
		m.queues[sender] = q
	}
	return q
}

func (m *Manager) execute(
	ctx context.Context,
	q *walletQueue,
	factory txqueue.TxFactory,
	assignNonce txqueue.AssignNonce,
) (receipt *types.Receipt, err error) {
	start := time.Now()
	log := m.log.With().Str("sender", q.addr.Hex()).Logger()
	defer func() {
		m.record(q.addr, start, err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, &txqueue.TxError{Kind: txqueue.ErrNetwork, Sender: q.addr, Err: err}
	}

	nonce, err := q.reserveNonce(ctx, m.client)
	if err != nil {
		log.Error().Err(err).Msg("reserving nonce")
		return nil, &txqueue.TxError{Kind: txqueue.ErrNetwork, Sender: q.addr, Err: err}
	}
	assignNonce(nonce)
	log = log.With().Uint64("nonce", nonce).Logger()
	log.Debug().Msg("executing transaction")

	tx, err := factory(ctx, nonce)
	if err == nil && tx == nil {
		err = errors.New("factory returned no transaction")
	}
	if err != nil {
		if isNonceDrift(err) {
			q.invalidate(nonceLatest)
		} else {
			q.rollback(nonce)
		}
		log.Error().Err(err).Msg("transaction factory failed")
		return nil, &txqueue.TxError{Kind: txqueue.ErrFactory, Sender: q.addr, Nonce: nonce, Err: err}
	}
	if tx.Nonce() != nonce {
		log.Warn().Uint64("tx_nonce", tx.Nonce()).Msg("factory didn't use the reserved nonce")
	}
	log = log.With().Str("hash", tx.Hash().Hex()).Logger()
	log.Debug().Msg("transaction sent")

	if m.miner != nil {
		if err := m.miner.Mine(ctx); err != nil {
			log.Warn().Err(err).Msg("mining block")
		}
	}

	receipt, err = bind.WaitMined(ctx, m.client, tx)
	if err != nil {
		// The transaction may still be in the mempool.
		q.invalidate(noncePending)
		log.Error().Err(err).Msg("waiting for receipt")
		return nil, &txqueue.TxError{
			Kind:   txqueue.ErrNetwork,
			Sender: q.addr,
			Nonce:  nonce,
			TxHash: tx.Hash(),
			Err:    fmt.Errorf("wait mined: %w", err),
		}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		// A mined transaction consumed the nonce even if it reverted.
		q.invalidate(nonceLatest)
		log.Error().Uint64("block", blockNumber(receipt)).Msg("transaction reverted")
		return nil, &txqueue.TxError{
			Kind:    txqueue.ErrTransactionReverted,
			Sender:  q.addr,
			Nonce:   nonce,
			TxHash:  tx.Hash(),
			Receipt: receipt,
		}
	}

	log.Info().Uint64("block", blockNumber(receipt)).Msg("transaction successful")
	return receipt, nil
}

// reserveNonce returns the nonce for the executing operation and advances the cache.
// Only the executing operation of the sender calls it.
func (q *walletQueue) reserveNonce(ctx context.Context, client txqueue.ChainClient) (uint64, error) {
	q.mu.Lock()
	source := q.source
	q.mu.Unlock()

	var nonce uint64
	switch source {
	case nonceCached:
		q.mu.Lock()
		nonce = q.nextNonce
		q.mu.Unlock()
	case nonceLatest:
		n, err := client.NonceAt(ctx, q.addr, nil)
		if err != nil {
			return 0, fmt.Errorf("get nonce at latest block: %w", err)
		}
		nonce = n
	case noncePending:
		n, err := client.PendingNonceAt(ctx, q.addr)
		if err != nil {
			return 0, fmt.Errorf("get pending nonce: %w", err)
		}
		nonce = n
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextNonce = nonce + 1
	q.source = nonceCached
	return nonce, nil
}

// rollback gives back the nonce reserved by a failed operation that didn't broadcast anything.
func (q *walletQueue) rollback(nonce uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.source == nonceCached && q.nextNonce == nonce+1 {
		q.nextNonce = nonce
	}
}

func (q *walletQueue) invalidate(source nonceSource) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.source = source
}

func (q *walletQueue) state() txqueue.QueueState {
	s := txqueue.QueueState{
		Address: q.addr,
		Depth:   q.depth.Load(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.source == nonceCached {
		n := q.nextNonce
		s.NextNonce = &n
	}
	return s
}

func isNonceDrift(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, m := range nonceDriftErrMsgs {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// blockNumber returns the receipt block, or 0 for clients that don't fill it.
func blockNumber(receipt *types.Receipt) uint64 {
	if receipt.BlockNumber == nil {
		return 0
	}
	return receipt.BlockNumber.Uint64()
}
