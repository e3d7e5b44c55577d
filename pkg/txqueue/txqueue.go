package txqueue

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	// ErrNetwork indicates that a call to the chain node failed (nonce query, submission or receipt wait).
	ErrNetwork = errors.New("network error")

	// ErrFactory indicates that the transaction factory supplied by the caller failed.
	ErrFactory = errors.New("transaction factory failed")

	// ErrTransactionReverted indicates that the transaction was mined with a failure status.
	ErrTransactionReverted = errors.New("transaction failed or not mined")

	// ErrQueueClosed indicates that the queue doesn't accept new operations.
	ErrQueueClosed = errors.New("transaction queue is closed")
)

// TxFactory builds, signs and broadcasts exactly one transaction using the provided nonce.
type TxFactory func(ctx context.Context, nonce uint64) (*types.Transaction, error)

// Miner forces the chain to produce a block. It is only meant for local development networks.
type Miner interface {
	Mine(ctx context.Context) error
}

// MinerFunc adapts a function to the Miner interface.
type MinerFunc func(ctx context.Context) error

// Mine calls f(ctx).
func (f MinerFunc) Mine(ctx context.Context) error {
	return f(ctx)
}

// ChainClient provides the api the chain needs to provide for a Queue.
type ChainClient interface {
	bind.DeployBackend
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
}

// Queue serializes transactions per sender address.
type Queue interface {
	// Enqueue appends an operation to the sender's queue. The factory is called once all
	// previously enqueued operations for the same sender have finished.
	Enqueue(ctx context.Context, sender common.Address, factory TxFactory) *Pending

	// EnqueueMaster is Enqueue keyed by the master wallet.
	EnqueueMaster(ctx context.Context, factory TxFactory) *Pending

	// State returns a snapshot of the sender's queue. It returns false if the sender was never used.
	State(sender common.Address) (QueueState, bool)

	// Resync drops the cached nonce of the sender, so it is fetched again from the chain.
	Resync(ctx context.Context, sender common.Address) error
}

// QueueState is a point-in-time view of a sender's queue.
type QueueState struct {
	Address   common.Address `json:"address"`
	NextNonce *uint64        `json:"next_nonce,omitempty"`
	Depth     int64          `json:"depth"`
}

// TxError is the error returned for a failed queued operation.
type TxError struct {
	// Kind is one of ErrNetwork, ErrFactory, ErrTransactionReverted or ErrQueueClosed.
	Kind    error
	Sender  common.Address
	Nonce   uint64
	TxHash  common.Hash
	Receipt *types.Receipt
	Err     error
}

func (e *TxError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	fmt.Fprintf(&b, " (sender %s, nonce %d", e.Sender.Hex(), e.Nonce)
	if e.TxHash != (common.Hash{}) {
		fmt.Fprintf(&b, ", tx %s", e.TxHash.Hex())
	}
	b.WriteString(")")
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	return b.String()
}

// Is reports whether target is the kind of this error.
func (e *TxError) Is(target error) bool {
	return target == e.Kind
}

func (e *TxError) Unwrap() error {
	return e.Err
}

// ParseAddress parses a hex encoded address. Addresses are case-insensitive.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}
