package impl

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
)

// fakeChain is a scripted txqueue.ChainClient. Transactions are "mined" by the factories
// created with send, and receipts can be held back with hold.
type fakeChain struct {
	mu         sync.Mutex
	latest     map[common.Address]uint64
	pending    map[common.Address]uint64
	receipts   map[common.Hash]*types.Receipt
	held       map[common.Hash]chan struct{}
	polled     map[common.Hash]chan struct{}
	nonceErr   error
	nonceCalls int
	pendCalls  int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		latest:   make(map[common.Address]uint64),
		pending:  make(map[common.Address]uint64),
		receipts: make(map[common.Hash]*types.Receipt),
		held:     make(map[common.Hash]chan struct{}),
		polled:   make(map[common.Hash]chan struct{}),
	}
}

var _ txqueue.ChainClient = (*fakeChain)(nil)

func (c *fakeChain) NonceAt(_ context.Context, account common.Address, _ *big.Int) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nonceCalls++
	if c.nonceErr != nil {
		return 0, c.nonceErr
	}
	return c.latest[account], nil
}

func (c *fakeChain) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendCalls++
	if n, ok := c.pending[account]; ok {
		return n, nil
	}
	return c.latest[account], nil
}

func (c *fakeChain) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	c.mu.Lock()
	if ch, ok := c.polled[hash]; ok {
		close(ch)
		delete(c.polled, hash)
	}
	held := c.held[hash]
	r, ok := c.receipts[hash]
	c.mu.Unlock()

	if held != nil {
		select {
		case <-held:
		default:
			return nil, ethereum.NotFound
		}
	}
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (c *fakeChain) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return nil, nil
}

func (c *fakeChain) setLatest(addr common.Address, n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest[addr] = n
}

func (c *fakeChain) setNonceErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nonceErr = err
}

func (c *fakeChain) calls() (latest int, pending int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nonceCalls, c.pendCalls
}

// hold keeps the receipt of the next transaction with the given nonce from sender hidden until release is called.
// polled is closed the first time the queue asks for that receipt.
func (c *fakeChain) hold(sender common.Address, nonce uint64) (polled <-chan struct{}, release func()) {
	hash := fakeTx(sender, nonce).Hash()
	held := make(chan struct{})
	p := make(chan struct{})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.held[hash] = held
	c.polled[hash] = p

	return p, func() { close(held) }
}

// send returns a factory that records the nonce it was called with and mines a transaction with the given status.
func (c *fakeChain) send(sender common.Address, status uint64, nonces chan<- uint64) txqueue.TxFactory {
	return func(_ context.Context, nonce uint64) (*types.Transaction, error) {
		if nonces != nil {
			nonces <- nonce
		}
		tx := fakeTx(sender, nonce)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.latest[sender] = nonce + 1
		c.receipts[tx.Hash()] = &types.Receipt{
			Status:      status,
			TxHash:      tx.Hash(),
			BlockNumber: big.NewInt(int64(nonce) + 1),
		}
		return tx, nil
	}
}

// broadcast returns a factory that broadcasts a transaction that is never mined.
func (c *fakeChain) broadcast(sender common.Address, nonces chan<- uint64) txqueue.TxFactory {
	return func(_ context.Context, nonce uint64) (*types.Transaction, error) {
		if nonces != nil {
			nonces <- nonce
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.pending[sender] = nonce + 1
		return fakeTx(sender, nonce), nil
	}
}

func failing(err error, nonces chan<- uint64) txqueue.TxFactory {
	return func(_ context.Context, nonce uint64) (*types.Transaction, error) {
		if nonces != nil {
			nonces <- nonce
		}
		return nil, err
	}
}

// fakeTx returns an unsigned transaction whose hash is unique per sender and nonce.
func fakeTx(sender common.Address, nonce uint64) *types.Transaction {
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: big.NewInt(1),
		Gas:      21000,
		To:       &sender,
		Value:    big.NewInt(0),
	})
}

var errBoom = errors.New("boom")
