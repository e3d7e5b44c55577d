package wallet

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	jsoniter "github.com/json-iterator/go"
)

// ErrWalletNotFound indicates that the keyring has no wallet for the address.
var ErrWalletNotFound = errors.New("wallet not found")

type keyringEntry struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
}

// Keyring is an ordered set of wallets, as generated by the local chain tooling in wallets.json.
type Keyring struct {
	wallets []*Wallet
	byAddr  map[common.Address]*Wallet
}

// LoadKeyring reads a keyring from a JSON file.
func LoadKeyring(path string) (*Keyring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyring file: %s", err)
	}

	return ParseKeyring(data)
}

// ParseKeyring parses a JSON array of {"address", "privateKey"} entries.
// The address field is optional, but if present it must match the key.
func ParseKeyring(data []byte) (*Keyring, error) {
	var entries []keyringEntry
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshaling keyring: %s", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("keyring is empty")
	}

	k := &Keyring{
		wallets: make([]*Wallet, 0, len(entries)),
		byAddr:  make(map[common.Address]*Wallet, len(entries)),
	}
	for i, e := range entries {
		w, err := NewWallet(e.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("wallet at index %d: %s", i, err)
		}
		if e.Address != "" && common.HexToAddress(e.Address) != w.Address() {
			return nil, fmt.Errorf("wallet at index %d: address %s doesn't match private key", i, e.Address)
		}
		if _, ok := k.byAddr[w.Address()]; ok {
			return nil, fmt.Errorf("wallet at index %d: duplicated address %s", i, w.Address().Hex())
		}
		k.wallets = append(k.wallets, w)
		k.byAddr[w.Address()] = w
	}

	return k, nil
}

// Len returns the number of wallets.
func (k *Keyring) Len() int {
	return len(k.wallets)
}

// At returns the wallet at position i.
func (k *Keyring) At(i int) (*Wallet, error) {
	if i < 0 || i >= len(k.wallets) {
		return nil, fmt.Errorf("wallet index %d out of range [0, %d)", i, len(k.wallets))
	}
	return k.wallets[i], nil
}

// ByAddress looks up a wallet by its address.
func (k *Keyring) ByAddress(addr common.Address) (*Wallet, error) {
	w, ok := k.byAddr[addr]
	if !ok {
		return nil, fmt.Errorf("%s: %w", addr.Hex(), ErrWalletNotFound)
	}
	return w, nil
}
