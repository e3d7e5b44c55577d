package txqueue

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/smartcv/go-smartcv/pkg/wallet"
)

// transferGasLimit is the intrinsic gas of a plain value transfer.
const transferGasLimit = uint64(21000)

// TransferFactory returns a factory that sends value wei from the wallet to the given address.
func TransferFactory(
	backend bind.ContractBackend,
	w *wallet.Wallet,
	chainID *big.Int,
	to common.Address,
	value *big.Int,
) TxFactory {
	return func(ctx context.Context, nonce uint64) (*types.Transaction, error) {
		gasPrice, err := backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("suggest gas price: %w", err)
		}

		tx := types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      transferGasLimit,
			To:       &to,
			Value:    value,
		})
		signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), w.PrivateKey())
		if err != nil {
			return nil, fmt.Errorf("signing txn: %w", err)
		}
		if err := backend.SendTransaction(ctx, signedTx); err != nil {
			return nil, fmt.Errorf("sending txn: %w", err)
		}

		return signedTx, nil
	}
}
