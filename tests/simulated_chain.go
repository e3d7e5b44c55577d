package tests

import (
	"context"
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/backends"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/smartcv/go-smartcv/pkg/wallet"
	"github.com/stretchr/testify/require"
)

// SimulatedChainID is the chain id of the simulated backend.
const SimulatedChainID = 1337

// SimulatedChain is a simulated Ethereum backend with a funded deployer account.
type SimulatedChain struct {
	ChainID *big.Int
	Backend *backends.SimulatedBackend

	Deployer             *wallet.Wallet
	DeployerTransactOpts *bind.TransactOpts
}

// ContractDeployer represents a function that deploys a contract in the simulated backend.
type ContractDeployer func(
	*bind.TransactOpts,
	*backends.SimulatedBackend,
) (address common.Address, tx *types.Transaction, err error)

// NewSimulatedChain creates a new simulated chain.
func NewSimulatedChain(t *testing.T) *SimulatedChain {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	deployer, err := wallet.FromECDSA(key)
	require.NoError(t, err)

	chainID := big.NewInt(SimulatedChainID)
	transactOpts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	require.NoError(t, err)

	alloc := make(core.GenesisAlloc)
	alloc[transactOpts.From] = core.GenesisAccount{Balance: new(big.Int).Mul(big.NewInt(math.MaxInt64), big.NewInt(100))}
	backend := backends.NewSimulatedBackend(alloc, math.MaxInt64)
	t.Cleanup(func() { _ = backend.Close() })

	gas, err := backend.SuggestGasPrice(context.Background())
	require.NoError(t, err)
	transactOpts.GasPrice = gas

	return &SimulatedChain{
		ChainID:              chainID,
		Backend:              backend,
		Deployer:             deployer,
		DeployerTransactOpts: transactOpts,
	}
}

// Miner returns a txqueue.Miner that commits the pending block.
func (c *SimulatedChain) Miner() txqueue.Miner {
	return txqueue.MinerFunc(func(context.Context) error {
		c.Backend.Commit()
		return nil
	})
}

// CreateAccountWithBalance creates a new account funded with 1 ether by the deployer.
func (c *SimulatedChain) CreateAccountWithBalance(t *testing.T) *wallet.Wallet {
	t.Helper()
	ctx := context.Background()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	w, err := wallet.FromECDSA(key)
	require.NoError(t, err)

	nonce, err := c.Backend.PendingNonceAt(ctx, c.Deployer.Address())
	require.NoError(t, err)

	factory := txqueue.TransferFactory(
		c.Backend, c.Deployer, c.ChainID, w.Address(), big.NewInt(1000000000000000000))
	tx, err := factory(ctx, nonce)
	require.NoError(t, err)
	c.Backend.Commit()

	receipt, err := c.Backend.TransactionReceipt(ctx, tx.Hash())
	require.NoError(t, err)
	require.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)

	return w
}

// DeployContract deploys a new contract with the deployer account.
func (c *SimulatedChain) DeployContract(t *testing.T, deploy ContractDeployer) common.Address {
	t.Helper()

	address, tx, err := deploy(c.DeployerTransactOpts, c.Backend)
	require.NoError(t, err)
	c.Backend.Commit()

	receipt, err := c.Backend.TransactionReceipt(context.Background(), tx.Hash())
	require.NoError(t, err)
	require.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)

	return address
}
