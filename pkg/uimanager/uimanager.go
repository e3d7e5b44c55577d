package uimanager

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/smartcv/go-smartcv/pkg/wallet"
)

// ErrCertificateLookupNotFound indicates that a receipt has no CertificateLookup event.
var ErrCertificateLookupNotFound = errors.New("CID not found in emitted logs")

// CertificateHash identifies a certificate in the UI manager contract.
type CertificateHash [32]byte

// NewCertificateHash parses a 0x prefixed, 32 bytes hex encoded hash.
func NewCertificateHash(s string) (CertificateHash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return CertificateHash{}, fmt.Errorf("decoding certificate hash: %s", err)
	}
	if len(b) != 32 {
		return CertificateHash{}, fmt.Errorf("certificate hash must be 32 bytes long, got %d", len(b))
	}
	var h CertificateHash
	copy(h[:], b)
	if h == (CertificateHash{}) {
		return CertificateHash{}, errors.New("certificate hash is empty")
	}
	return h, nil
}

// String returns the 0x prefixed hex encoding of the hash.
func (h CertificateHash) String() string {
	return hexutil.Encode(h[:])
}

// Certificate is the information the contract keeps about a certificate.
type Certificate struct {
	Exists bool
	Info   string
}

// CID extracts the IPFS CID from the certificate information, formatted as "CID: <cid>, ...".
func (c Certificate) CID() (string, error) {
	return ParseCID(c.Info)
}

var cidRegexp = regexp.MustCompile(`CID:\s*(\w+)`)

// ParseCID extracts the IPFS CID from a "CID: <cid>" formatted string.
func ParseCID(info string) (string, error) {
	m := cidRegexp.FindStringSubmatch(info)
	if m == nil {
		return "", fmt.Errorf("invalid CID format %q", info)
	}
	return m[1], nil
}

// UIManager is the SmartCV UI manager contract.
// Write methods return factories to be enqueued for the signer's address.
type UIManager interface {
	// AddWhiteListEntity allows the entity to store certificates. Only the contract owner can call it.
	AddWhiteListEntity(signer *wallet.Wallet, entity common.Address) txqueue.TxFactory

	// RemoveWhiteListEntity revokes a whitelisted entity. Only the contract owner can call it.
	RemoveWhiteListEntity(signer *wallet.Wallet, entity common.Address) txqueue.TxFactory

	// StoreCertificate stores a certificate. The signer must be the whitelisted entity.
	StoreCertificate(signer *wallet.Wallet, entity common.Address, hash CertificateHash, cid string) txqueue.TxFactory

	// BuyTokens buys tokens paying value wei.
	BuyTokens(signer *wallet.Wallet, value *big.Int) txqueue.TxFactory

	// TransferTokens transfers tokens from the signer to the given address.
	TransferTokens(signer *wallet.Wallet, to common.Address, amount *big.Int) txqueue.TxFactory

	// MintUserTokens mints tokens to the given address. Only the contract owner can call it.
	MintUserTokens(signer *wallet.Wallet, to common.Address, amount *big.Int) txqueue.TxFactory

	// GetCertificateInfo pays for a certificate lookup. The result is emitted in a CertificateLookup event.
	GetCertificateInfo(signer *wallet.Wallet, hash CertificateHash) txqueue.TxFactory

	// ApproveTokens allows the UI manager contract to spend amount tokens of the signer
	// in the given token manager contract.
	ApproveTokens(signer *wallet.Wallet, token common.Address, amount *big.Int) txqueue.TxFactory

	// CertificateLookup returns the certificate information emitted in the receipt.
	CertificateLookup(receipt *types.Receipt) (string, error)

	// TokenManager returns the address of the token manager contract the UI manager charges in.
	TokenManager(ctx context.Context) (common.Address, error)

	IsWhitelisted(ctx context.Context, entity common.Address) (bool, error)
	GetUserTokenBalance(ctx context.Context, user common.Address) (*big.Int, error)
	GetCertificateInfoView(ctx context.Context, hash CertificateHash) (Certificate, error)
}
