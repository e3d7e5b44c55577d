package smartcv

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/smartcv/go-smartcv/pkg/uimanager"
)

var (
	// ErrAlreadyWhitelisted indicates that the entity is already whitelisted in the UI manager contract.
	ErrAlreadyWhitelisted = errors.New("entity already whitelisted")

	// ErrCertificateNotFound indicates that the UI manager contract has no certificate for the hash.
	ErrCertificateNotFound = errors.New("certificate not found")

	// ErrInsufficientTokens indicates that the verifier can't pay for a certificate lookup.
	ErrInsufficientTokens = errors.New("insufficient token balance for verification")
)

const (
	// TokensPerFunding is the amount of tokens a user gets from FundUser.
	TokensPerFunding = 100

	// TokensPerEther is the price of the token in the UI manager contract.
	TokensPerEther = 10000

	// TokensPerLookup is what a verifier pays for a certificate lookup.
	TokensPerLookup = 10
)

// FundUserResponse is a FundUser response.
type FundUserResponse struct {
	Status      string        `json:"status"`
	ToWallet    string        `json:"toWallet"`
	TokenAmount int64         `json:"tokenAmount"`
	PaidWei     string        `json:"paidWei"`
	TxHashes    []common.Hash `json:"txHashes"`
}

// TxResponse describes a mined transaction.
type TxResponse struct {
	From        string      `json:"from"`
	Nonce       uint64      `json:"nonce"`
	TxHash      common.Hash `json:"txHash"`
	BlockNumber uint64      `json:"blockNumber"`
}

// CertificateResponse is a GetCertificate response.
type CertificateResponse struct {
	Hash   string `json:"certificateHash"`
	Exists bool   `json:"exists"`
	CID    string `json:"cid,omitempty"`
	Info   string `json:"info,omitempty"`
}

// VerifyResponse is a VerifyCertificate response.
type VerifyResponse struct {
	Verified bool   `json:"verified"`
	Verifier string `json:"verifier"`
	Hash     string `json:"certificateHash"`
	CID      string `json:"cid"`
	Info     string `json:"info"`
	// TxHashes are the token approval and the lookup transactions, in that order.
	TxHashes []common.Hash `json:"txHashes"`
}

// BalanceResponse is a GetBalance response.
type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// SmartCV defines the operations of the SmartCV gateway. Every write goes through the
// transaction queue of the wallet that signs it.
type SmartCV interface {
	// FundUser buys tokens with the master wallet and transfers them to the user.
	FundUser(ctx context.Context, user common.Address) (FundUserResponse, error)

	// WhitelistEntity whitelists a company with the master wallet.
	WhitelistEntity(ctx context.Context, entity common.Address) (TxResponse, error)

	// StoreCertificate stores a certificate signed by a managed company wallet.
	StoreCertificate(
		ctx context.Context,
		company common.Address,
		hash uimanager.CertificateHash,
		cid string,
	) (TxResponse, error)

	// Transfer sends value wei from a managed wallet.
	Transfer(ctx context.Context, from common.Address, to common.Address, value *big.Int) (TxResponse, error)

	// VerifyCertificate pays TokensPerLookup tokens from a managed verifier wallet to look up
	// a certificate on chain, and returns the CID emitted by the lookup.
	VerifyCertificate(ctx context.Context, verifier common.Address, hash uimanager.CertificateHash) (VerifyResponse, error)

	GetBalance(ctx context.Context, user common.Address) (BalanceResponse, error)
	GetCertificate(ctx context.Context, hash uimanager.CertificateHash) (CertificateResponse, error)

	// QueueState returns the queue snapshot of a managed wallet.
	QueueState(ctx context.Context, addr common.Address) (txqueue.QueueState, error)
}
