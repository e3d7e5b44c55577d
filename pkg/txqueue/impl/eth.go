package impl

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
)

// EthClient is the Ethereum implementation of the txqueue.ChainClient.
type EthClient struct {
	backend bind.ContractBackend
}

var _ txqueue.ChainClient = (*EthClient)(nil)

// NewEthClient returns an EthClient.
func NewEthClient(backend bind.ContractBackend) *EthClient {
	return &EthClient{
		backend: backend,
	}
}

// NonceAt returns the account nonce at the given block, nil meaning the latest block.
func (c *EthClient) NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error) {
	sr, ok := c.backend.(ethereum.ChainStateReader)
	if !ok {
		return 0, errors.New("chain client casting backend to chain state reader")
	}

	nonce, err := sr.NonceAt(ctx, account, blockNumber)
	if err != nil {
		return 0, fmt.Errorf("chain client nonce at: %w", err)
	}

	return nonce, nil
}

// PendingNonceAt retrieves the current pending nonce associated with an account.
func (c *EthClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	nonce, err := c.backend.PendingNonceAt(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("chain client pending nonce at: %w", err)
	}

	return nonce, nil
}

// TransactionReceipt returns the receipt of a transaction by transaction hash.
// Note that the receipt is not available for pending transactions.
func (c *EthClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	tr, ok := c.backend.(ethereum.TransactionReader)
	if !ok {
		return nil, errors.New("chain client casting backend to transaction reader")
	}

	// ethereum.NotFound is returned unwrapped, WaitMined keeps polling on it.
	return tr.TransactionReceipt(ctx, txHash)
}

// CodeAt returns the code of the given account.
func (c *EthClient) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return c.backend.CodeAt(ctx, account, blockNumber)
}
