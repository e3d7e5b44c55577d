package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Wallet stores user's secret key and public key.
type Wallet struct {
	sk   *ecdsa.PrivateKey
	addr common.Address
}

// NewWallet creates a new wallet from a hex encoded private key. The 0x prefix is optional.
func NewWallet(sk string) (*Wallet, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(sk, "0x"))
	if err != nil {
		return nil, fmt.Errorf("converting private key to ECDSA: %s", err)
	}

	return FromECDSA(privateKey)
}

// FromECDSA creates a wallet from an existing private key.
func FromECDSA(privateKey *ecdsa.PrivateKey) (*Wallet, error) {
	publicKeyECDSA, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("casting public key to ECDSA")
	}

	return &Wallet{
		sk:   privateKey,
		addr: crypto.PubkeyToAddress(*publicKeyECDSA),
	}, nil
}

// PrivateKey gets the private key.
func (w *Wallet) PrivateKey() *ecdsa.PrivateKey {
	return w.sk
}

// Address returns the wallet address.
func (w *Wallet) Address() common.Address {
	return w.addr
}

// Transactor returns transact options signing with the wallet key and pinned to the given nonce.
func (w *Wallet) Transactor(ctx context.Context, chainID *big.Int, nonce uint64) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(w.sk, chainID)
	if err != nil {
		return nil, fmt.Errorf("creating keyed transactor: %s", err)
	}
	opts.Context = ctx
	opts.Nonce = new(big.Int).SetUint64(nonce)

	return opts, nil
}
