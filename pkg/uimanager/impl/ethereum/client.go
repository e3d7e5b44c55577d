package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/smartcv/go-smartcv/pkg/uimanager"
	"github.com/smartcv/go-smartcv/pkg/wallet"
)

var _ uimanager.UIManager = (*Client)(nil)

// Client is the Ethereum implementation of the UI manager contract.
type Client struct {
	contract *Contract
	backend  bind.ContractBackend
	tokenABI abi.ABI
	chainID  *big.Int
	gasLimit uint64
}

// Option modifies the Client configuration.
type Option func(*Client)

// WithGasLimit sets a fixed gas limit for transactions instead of estimating it.
func WithGasLimit(gasLimit uint64) Option {
	return func(c *Client) {
		c.gasLimit = gasLimit
	}
}

// NewClient creates a new Client.
func NewClient(
	backend bind.ContractBackend,
	chainID *big.Int,
	contractAddr common.Address,
	opts ...Option,
) (*Client, error) {
	contract, err := NewContract(contractAddr, backend)
	if err != nil {
		return nil, fmt.Errorf("creating contract: %v", err)
	}
	tokenABI, err := abi.JSON(strings.NewReader(TokenManagerABI))
	if err != nil {
		return nil, fmt.Errorf("parsing token manager abi: %v", err)
	}
	c := &Client{
		contract: contract,
		backend:  backend,
		tokenABI: tokenABI,
		chainID:  chainID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AddWhiteListEntity implements AddWhiteListEntity.
func (c *Client) AddWhiteListEntity(signer *wallet.Wallet, entity common.Address) txqueue.TxFactory {
	return c.transact(signer, nil, "addWhiteListEntity", entity)
}

// RemoveWhiteListEntity implements RemoveWhiteListEntity.
func (c *Client) RemoveWhiteListEntity(signer *wallet.Wallet, entity common.Address) txqueue.TxFactory {
	return c.transact(signer, nil, "removeWhiteListEntity", entity)
}

// StoreCertificate implements StoreCertificate.
func (c *Client) StoreCertificate(
	signer *wallet.Wallet,
	entity common.Address,
	hash uimanager.CertificateHash,
	cid string,
) txqueue.TxFactory {
	return c.transact(signer, nil, "storeCertificate", entity, [32]byte(hash), cid)
}

// BuyTokens implements BuyTokens.
func (c *Client) BuyTokens(signer *wallet.Wallet, value *big.Int) txqueue.TxFactory {
	return c.transact(signer, value, "buyTokens")
}

// TransferTokens implements TransferTokens.
func (c *Client) TransferTokens(signer *wallet.Wallet, to common.Address, amount *big.Int) txqueue.TxFactory {
	return c.transact(signer, nil, "transferTokens", to, amount)
}

// MintUserTokens implements MintUserTokens.
func (c *Client) MintUserTokens(signer *wallet.Wallet, to common.Address, amount *big.Int) txqueue.TxFactory {
	return c.transact(signer, nil, "mintUserTokens", to, amount)
}

// GetCertificateInfo implements GetCertificateInfo.
func (c *Client) GetCertificateInfo(signer *wallet.Wallet, hash uimanager.CertificateHash) txqueue.TxFactory {
	return c.transact(signer, nil, "getCertificateInfo", [32]byte(hash))
}

// ApproveTokens implements ApproveTokens.
func (c *Client) ApproveTokens(signer *wallet.Wallet, token common.Address, amount *big.Int) txqueue.TxFactory {
	bound := bind.NewBoundContract(token, c.tokenABI, c.backend, c.backend, c.backend)
	return c.transactOn(bound, signer, nil, "approve", c.contract.address, amount)
}

// CertificateLookup implements CertificateLookup.
func (c *Client) CertificateLookup(receipt *types.Receipt) (string, error) {
	event := c.contract.abi.Events["CertificateLookup"]
	for _, l := range receipt.Logs {
		if l == nil || l.Address != c.contract.address || len(l.Topics) == 0 || l.Topics[0] != event.ID {
			continue
		}
		var lookup CertificateLookupEvent
		if err := c.contract.bound.UnpackLog(&lookup, "CertificateLookup", *l); err != nil {
			return "", fmt.Errorf("unpacking CertificateLookup event: %s", err)
		}
		return lookup.IpfsCid, nil
	}
	return "", uimanager.ErrCertificateLookupNotFound
}

// IsWhitelisted implements IsWhitelisted.
func (c *Client) IsWhitelisted(ctx context.Context, entity common.Address) (bool, error) {
	var out []interface{}
	if err := c.contract.bound.Call(&bind.CallOpts{Context: ctx}, &out, "isWhitelisted", entity); err != nil {
		return false, fmt.Errorf("calling isWhitelisted: %w", err)
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// GetUserTokenBalance implements GetUserTokenBalance.
func (c *Client) GetUserTokenBalance(ctx context.Context, user common.Address) (*big.Int, error) {
	var out []interface{}
	if err := c.contract.bound.Call(&bind.CallOpts{Context: ctx}, &out, "getUserTokenBalance", user); err != nil {
		return nil, fmt.Errorf("calling getUserTokenBalance: %w", err)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// TokenManager implements TokenManager.
func (c *Client) TokenManager(ctx context.Context) (common.Address, error) {
	var out []interface{}
	if err := c.contract.bound.Call(&bind.CallOpts{Context: ctx}, &out, "tokenManager"); err != nil {
		return common.Address{}, fmt.Errorf("calling tokenManager: %w", err)
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// GetCertificateInfoView implements GetCertificateInfoView.
func (c *Client) GetCertificateInfoView(
	ctx context.Context,
	hash uimanager.CertificateHash,
) (uimanager.Certificate, error) {
	var out []interface{}
	err := c.contract.bound.Call(&bind.CallOpts{Context: ctx}, &out, "getCertificateInfoView", [32]byte(hash))
	if err != nil {
		return uimanager.Certificate{}, fmt.Errorf("calling getCertificateInfoView: %w", err)
	}
	return uimanager.Certificate{
		Exists: *abi.ConvertType(out[0], new(bool)).(*bool),
		Info:   *abi.ConvertType(out[1], new(string)).(*string),
	}, nil
}

func (c *Client) transact(
	signer *wallet.Wallet,
	value *big.Int,
	method string,
	params ...interface{},
) txqueue.TxFactory {
	return c.transactOn(c.contract.bound, signer, value, method, params...)
}

func (c *Client) transactOn(
	bound *bind.BoundContract,
	signer *wallet.Wallet,
	value *big.Int,
	method string,
	params ...interface{},
) txqueue.TxFactory {
	return func(ctx context.Context, nonce uint64) (*types.Transaction, error) {
		opts, err := signer.Transactor(ctx, c.chainID, nonce)
		if err != nil {
			return nil, err
		}
		opts.Value = value
		opts.GasLimit = c.gasLimit

		tx, err := bound.Transact(opts, method, params...)
		if err != nil {
			return nil, fmt.Errorf("calling %s: %w", method, err)
		}
		return tx, nil
	}
}
