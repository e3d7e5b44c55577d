package txqueue

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ResolvePending completes a Pending. Only the first call has effect.
type ResolvePending func(*types.Receipt, error)

// AssignNonce records the nonce reserved for a Pending.
type AssignNonce func(uint64)

// Pending is the result of an enqueued operation.
type Pending struct {
	sender common.Address
	done   chan struct{}

	mu       sync.Mutex
	nonce    uint64
	hasNonce bool
	receipt  *types.Receipt
	err      error
}

// NewPending returns a Pending and the functions used by the queue to fill it.
func NewPending(sender common.Address) (*Pending, AssignNonce, ResolvePending) {
	p := &Pending{
		sender: sender,
		done:   make(chan struct{}),
	}

	var once sync.Once
	resolve := func(r *types.Receipt, err error) {
		once.Do(func() {
			p.mu.Lock()
			p.receipt, p.err = r, err
			p.mu.Unlock()
			close(p.done)
		})
	}
	assign := func(n uint64) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.nonce, p.hasNonce = n, true
	}

	return p, assign, resolve
}

// Sender returns the address the operation was enqueued for.
func (p *Pending) Sender() common.Address {
	return p.sender
}

// Done is closed when the operation finished.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Nonce returns the nonce reserved for the operation, if any was reserved yet.
func (p *Pending) Nonce() (uint64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nonce, p.hasNonce
}

// Wait blocks until the operation finished or ctx is done. Giving up waiting doesn't cancel the operation.
// Use Result when ctx is the one the operation was enqueued with: the operation already observes it
// and reports its expiration as a TxError.
func (p *Pending) Wait(ctx context.Context) (*types.Receipt, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
	}
	return p.result()
}

// Result blocks until the operation finished and returns its outcome.
func (p *Pending) Result() (*types.Receipt, error) {
	<-p.done
	return p.result()
}

func (p *Pending) result() (*types.Receipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.receipt, p.err
}
