package impl

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/smartcv/go-smartcv/pkg/wallet"
	"github.com/smartcv/go-smartcv/tests"
	"github.com/stretchr/testify/require"
)

// revertingInitCode deploys a contract whose code is PUSH1 0 PUSH1 0 REVERT.
var revertingInitCode = hexutil.MustDecode("0x6460006000fd6000526005601bf3")

func TestChainConcurrentSenders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	chain := tests.NewSimulatedChain(t)
	w1 := chain.CreateAccountWithBalance(t)
	w2 := chain.CreateAccountWithBalance(t)

	m, err := NewManager(NewEthClient(chain.Backend), chain.Deployer.Address(), chain.Miner())
	require.NoError(t, err)

	to := common.HexToAddress("0x00000000000000000000000000000000c0ffee00")
	value := big.NewInt(1000)

	var pendings []*txqueue.Pending
	for i := 0; i < 3; i++ {
		for _, w := range []*wallet.Wallet{w1, w2} {
			factory := txqueue.TransferFactory(chain.Backend, w, chain.ChainID, to, value)
			pendings = append(pendings, m.Enqueue(ctx, w.Address(), factory))
		}
	}
	for _, p := range pendings {
		r, err := p.Wait(ctx)
		require.NoError(t, err)
		require.Equal(t, types.ReceiptStatusSuccessful, r.Status)
	}

	for _, w := range []*wallet.Wallet{w1, w2} {
		nonce, err := chain.Backend.NonceAt(ctx, w.Address(), nil)
		require.NoError(t, err)
		require.Equal(t, uint64(3), nonce)

		s, ok := m.State(w.Address())
		require.True(t, ok)
		require.Equal(t, uint64(3), *s.NextNonce)
	}

	balance, err := chain.Backend.BalanceAt(ctx, to, nil)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(6000), balance)
}

func TestChainRevertedTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	chain := tests.NewSimulatedChain(t)
	w := chain.CreateAccountWithBalance(t)

	m, err := NewManager(NewEthClient(chain.Backend), chain.Deployer.Address(), chain.Miner())
	require.NoError(t, err)

	r, err := m.Submit(ctx, w.Address(), rawFactory(chain, w, nil, revertingInitCode))
	require.NoError(t, err)
	reverting := r.ContractAddress
	code, err := chain.Backend.CodeAt(ctx, reverting, nil)
	require.NoError(t, err)
	require.NotEmpty(t, code)

	p1 := m.Enqueue(ctx, w.Address(), rawFactory(chain, w, &reverting, nil))
	p2 := m.Enqueue(ctx, w.Address(), txqueue.TransferFactory(chain.Backend, w, chain.ChainID, reverting, big.NewInt(0)))

	_, err = p1.Wait(ctx)
	require.ErrorIs(t, err, txqueue.ErrTransactionReverted)
	n1, _ := p1.Nonce()
	require.Equal(t, uint64(1), n1)

	// Plain transfers to the contract revert too, so the queue keeps going with the next nonce.
	_, err = p2.Wait(ctx)
	require.ErrorIs(t, err, txqueue.ErrTransactionReverted)
	n2, _ := p2.Nonce()
	require.Equal(t, uint64(2), n2)

	r, err = m.Submit(ctx, w.Address(), txqueue.TransferFactory(chain.Backend, w, chain.ChainID, w.Address(), big.NewInt(1)))
	require.NoError(t, err)
	require.Equal(t, types.ReceiptStatusSuccessful, r.Status)

	nonce, err := chain.Backend.NonceAt(ctx, w.Address(), nil)
	require.NoError(t, err)
	require.Equal(t, uint64(4), nonce)
}

func TestChainFactoryErrorDoesNotSkipNonce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	chain := tests.NewSimulatedChain(t)
	w := chain.CreateAccountWithBalance(t)

	m, err := NewManager(NewEthClient(chain.Backend), chain.Deployer.Address(), chain.Miner())
	require.NoError(t, err)

	to := common.HexToAddress("0x00000000000000000000000000000000c0ffee01")
	_, err = m.Submit(ctx, w.Address(), failing(errBoom, nil))
	require.ErrorIs(t, err, txqueue.ErrFactory)

	r, err := m.Submit(ctx, w.Address(), txqueue.TransferFactory(chain.Backend, w, chain.ChainID, to, big.NewInt(1)))
	require.NoError(t, err)
	require.Equal(t, types.ReceiptStatusSuccessful, r.Status)

	tx, _, err := chain.Backend.TransactionByHash(ctx, r.TxHash)
	require.NoError(t, err)
	require.Equal(t, uint64(0), tx.Nonce())
}

func TestChainNonceDriftFromOutsideSender(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	chain := tests.NewSimulatedChain(t)
	w := chain.CreateAccountWithBalance(t)

	m, err := NewManager(NewEthClient(chain.Backend), chain.Deployer.Address(), chain.Miner())
	require.NoError(t, err)

	to := common.HexToAddress("0x00000000000000000000000000000000c0ffee02")
	_, err = m.Submit(ctx, w.Address(), txqueue.TransferFactory(chain.Backend, w, chain.ChainID, to, big.NewInt(1)))
	require.NoError(t, err)

	// The same key sends a transaction without going through the queue.
	_, err = txqueue.TransferFactory(chain.Backend, w, chain.ChainID, to, big.NewInt(1))(ctx, 1)
	require.NoError(t, err)
	chain.Backend.Commit()

	_, err = m.Submit(ctx, w.Address(), txqueue.TransferFactory(chain.Backend, w, chain.ChainID, to, big.NewInt(1)))
	require.ErrorIs(t, err, txqueue.ErrFactory)

	r, err := m.Submit(ctx, w.Address(), txqueue.TransferFactory(chain.Backend, w, chain.ChainID, to, big.NewInt(1)))
	require.NoError(t, err)
	tx, _, err := chain.Backend.TransactionByHash(ctx, r.TxHash)
	require.NoError(t, err)
	require.Equal(t, uint64(2), tx.Nonce())
}

// rawFactory sends data to the given address with a fixed gas limit. A nil address creates a contract.
func rawFactory(chain *tests.SimulatedChain, w *wallet.Wallet, to *common.Address, data []byte) txqueue.TxFactory {
	return func(ctx context.Context, nonce uint64) (*types.Transaction, error) {
		gasPrice, err := chain.Backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, err
		}
		tx, err := types.SignNewTx(w.PrivateKey(), types.LatestSignerForChainID(chain.ChainID), &types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      100000,
			To:       to,
			Value:    big.NewInt(0),
			Data:     data,
		})
		if err != nil {
			return nil, err
		}
		return tx, chain.Backend.SendTransaction(ctx, tx)
	}
}
