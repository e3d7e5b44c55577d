package impl

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
	logger "github.com/rs/zerolog/log"
	"github.com/smartcv/go-smartcv/internal/smartcv"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/smartcv/go-smartcv/pkg/uimanager"
	"github.com/smartcv/go-smartcv/pkg/wallet"
)

var _ smartcv.SmartCV = (*Gateway)(nil)

// Gateway is the main implementation of SmartCV.
type Gateway struct {
	log      zerolog.Logger
	queue    txqueue.Queue
	contract uimanager.UIManager
	keyring  *wallet.Keyring
	master   *wallet.Wallet
	backend  bind.ContractBackend
	chainID  *big.Int

	receiptTimeout time.Duration
}

// NewGateway creates a new Gateway. The master wallet must be the one queue.EnqueueMaster uses.
// A receiptTimeout of zero waits for receipts as long as the request lives.
func NewGateway(
	queue txqueue.Queue,
	contract uimanager.UIManager,
	keyring *wallet.Keyring,
	master *wallet.Wallet,
	backend bind.ContractBackend,
	chainID *big.Int,
	receiptTimeout time.Duration,
) *Gateway {
	return &Gateway{
		log: logger.With().
			Str("component", "gateway").
			Logger(),
		queue:          queue,
		contract:       contract,
		keyring:        keyring,
		master:         master,
		backend:        backend,
		chainID:        chainID,
		receiptTimeout: receiptTimeout,
	}
}

// FundUser implements FundUser.
func (g *Gateway) FundUser(ctx context.Context, user common.Address) (smartcv.FundUserResponse, error) {
	payment := tokenPrice(smartcv.TokensPerFunding)

	// The transfer is only enqueued once the tokens were bought.
	bought, err := g.submitMaster(ctx, g.contract.BuyTokens(g.master, payment))
	if err != nil {
		return smartcv.FundUserResponse{}, fmt.Errorf("buying tokens: %w", err)
	}
	transferred, err := g.submitMaster(
		ctx, g.contract.TransferTokens(g.master, user, big.NewInt(smartcv.TokensPerFunding)))
	if err != nil {
		return smartcv.FundUserResponse{}, fmt.Errorf("transferring tokens: %w", err)
	}

	return smartcv.FundUserResponse{
		Status:      "tokens_bought_and_transferred",
		ToWallet:    user.Hex(),
		TokenAmount: smartcv.TokensPerFunding,
		PaidWei:     payment.String(),
		TxHashes:    []common.Hash{bought.TxHash, transferred.TxHash},
	}, nil
}

// WhitelistEntity implements WhitelistEntity.
func (g *Gateway) WhitelistEntity(ctx context.Context, entity common.Address) (smartcv.TxResponse, error) {
	whitelisted, err := g.contract.IsWhitelisted(ctx, entity)
	if err != nil {
		return smartcv.TxResponse{}, fmt.Errorf("checking whitelist: %w", err)
	}
	if whitelisted {
		return smartcv.TxResponse{}, fmt.Errorf("%s: %w", entity.Hex(), smartcv.ErrAlreadyWhitelisted)
	}

	resp, err := g.submitMaster(ctx, g.contract.AddWhiteListEntity(g.master, entity))
	if err != nil {
		return smartcv.TxResponse{}, fmt.Errorf("whitelisting entity: %w", err)
	}
	return resp, nil
}

// StoreCertificate implements StoreCertificate.
func (g *Gateway) StoreCertificate(
	ctx context.Context,
	company common.Address,
	hash uimanager.CertificateHash,
	cid string,
) (smartcv.TxResponse, error) {
	w, err := g.keyring.ByAddress(company)
	if err != nil {
		return smartcv.TxResponse{}, err
	}

	resp, err := g.submit(ctx, w.Address(), g.contract.StoreCertificate(w, company, hash, cid))
	if err != nil {
		return smartcv.TxResponse{}, fmt.Errorf("storing certificate: %w", err)
	}
	return resp, nil
}

// Transfer implements Transfer.
func (g *Gateway) Transfer(
	ctx context.Context,
	from common.Address,
	to common.Address,
	value *big.Int,
) (smartcv.TxResponse, error) {
	w, err := g.keyring.ByAddress(from)
	if err != nil {
		return smartcv.TxResponse{}, err
	}

	resp, err := g.submit(ctx, w.Address(), txqueue.TransferFactory(g.backend, w, g.chainID, to, value))
	if err != nil {
		return smartcv.TxResponse{}, fmt.Errorf("transferring: %w", err)
	}
	return resp, nil
}

// VerifyCertificate implements VerifyCertificate.
func (g *Gateway) VerifyCertificate(
	ctx context.Context,
	verifier common.Address,
	hash uimanager.CertificateHash,
) (smartcv.VerifyResponse, error) {
	w, err := g.keyring.ByAddress(verifier)
	if err != nil {
		return smartcv.VerifyResponse{}, err
	}

	cert, err := g.contract.GetCertificateInfoView(ctx, hash)
	if err != nil {
		return smartcv.VerifyResponse{}, fmt.Errorf("getting certificate: %w", err)
	}
	if !cert.Exists {
		return smartcv.VerifyResponse{}, fmt.Errorf("%s: %w", hash, smartcv.ErrCertificateNotFound)
	}

	price := big.NewInt(smartcv.TokensPerLookup)
	balance, err := g.contract.GetUserTokenBalance(ctx, verifier)
	if err != nil {
		return smartcv.VerifyResponse{}, fmt.Errorf("getting token balance: %w", err)
	}
	if balance.Cmp(price) < 0 {
		return smartcv.VerifyResponse{}, fmt.Errorf(
			"%s holds %s tokens, %s needed: %w", verifier.Hex(), balance, price, smartcv.ErrInsufficientTokens)
	}
	token, err := g.contract.TokenManager(ctx)
	if err != nil {
		return smartcv.VerifyResponse{}, fmt.Errorf("getting token manager: %w", err)
	}

	// The lookup spends the allowance, so it's only enqueued once the approval was mined.
	approved, _, err := g.wait(ctx, func(ctx context.Context) *txqueue.Pending {
		return g.queue.Enqueue(ctx, w.Address(), g.contract.ApproveTokens(w, token, price))
	})
	if err != nil {
		return smartcv.VerifyResponse{}, fmt.Errorf("approving tokens: %w", err)
	}
	looked, receipt, err := g.wait(ctx, func(ctx context.Context) *txqueue.Pending {
		return g.queue.Enqueue(ctx, w.Address(), g.contract.GetCertificateInfo(w, hash))
	})
	if err != nil {
		return smartcv.VerifyResponse{}, fmt.Errorf("looking up certificate: %w", err)
	}

	info, err := g.contract.CertificateLookup(receipt)
	if err != nil {
		return smartcv.VerifyResponse{}, err
	}
	cid, err := uimanager.ParseCID(info)
	if err != nil {
		return smartcv.VerifyResponse{}, fmt.Errorf("parsing lookup: %w", err)
	}

	g.log.Info().
		Str("verifier", verifier.Hex()).
		Str("hash", hash.String()).
		Str("cid", cid).
		Msg("certificate verified")

	return smartcv.VerifyResponse{
		Verified: true,
		Verifier: verifier.Hex(),
		Hash:     hash.String(),
		CID:      cid,
		Info:     info,
		TxHashes: []common.Hash{approved.TxHash, looked.TxHash},
	}, nil
}

// GetBalance implements GetBalance.
func (g *Gateway) GetBalance(ctx context.Context, user common.Address) (smartcv.BalanceResponse, error) {
	balance, err := g.contract.GetUserTokenBalance(ctx, user)
	if err != nil {
		return smartcv.BalanceResponse{}, fmt.Errorf("getting token balance: %w", err)
	}
	return smartcv.BalanceResponse{Address: user.Hex(), Balance: balance.String()}, nil
}

// GetCertificate implements GetCertificate.
func (g *Gateway) GetCertificate(
	ctx context.Context,
	hash uimanager.CertificateHash,
) (smartcv.CertificateResponse, error) {
	cert, err := g.contract.GetCertificateInfoView(ctx, hash)
	if err != nil {
		return smartcv.CertificateResponse{}, fmt.Errorf("getting certificate: %w", err)
	}
	resp := smartcv.CertificateResponse{Hash: hash.String(), Exists: cert.Exists, Info: cert.Info}
	if cert.Exists {
		if cid, err := cert.CID(); err == nil {
			resp.CID = cid
		} else {
			g.log.Warn().Err(err).Str("hash", hash.String()).Msg("certificate info without CID")
		}
	}
	return resp, nil
}

// QueueState implements QueueState.
func (g *Gateway) QueueState(_ context.Context, addr common.Address) (txqueue.QueueState, error) {
	if addr != g.master.Address() {
		if _, err := g.keyring.ByAddress(addr); err != nil {
			return txqueue.QueueState{}, err
		}
	}
	state, ok := g.queue.State(addr)
	if !ok {
		return txqueue.QueueState{Address: addr}, nil
	}
	return state, nil
}

// EnsureWhitelisted whitelists the company with the master wallet if it isn't whitelisted yet.
func (g *Gateway) EnsureWhitelisted(ctx context.Context, company common.Address) error {
	resp, err := g.WhitelistEntity(ctx, company)
	if errors.Is(err, smartcv.ErrAlreadyWhitelisted) {
		g.log.Info().Str("company", company.Hex()).Msg("company already whitelisted")
		return nil
	}
	if err != nil {
		return err
	}
	g.log.Info().
		Str("company", company.Hex()).
		Str("hash", resp.TxHash.Hex()).
		Msg("company successfully whitelisted")
	return nil
}

func (g *Gateway) submitMaster(ctx context.Context, factory txqueue.TxFactory) (smartcv.TxResponse, error) {
	resp, _, err := g.wait(ctx, func(ctx context.Context) *txqueue.Pending {
		return g.queue.EnqueueMaster(ctx, factory)
	})
	return resp, err
}

func (g *Gateway) submit(
	ctx context.Context,
	sender common.Address,
	factory txqueue.TxFactory,
) (smartcv.TxResponse, error) {
	resp, _, err := g.wait(ctx, func(ctx context.Context) *txqueue.Pending {
		return g.queue.Enqueue(ctx, sender, factory)
	})
	return resp, err
}

func (g *Gateway) wait(
	ctx context.Context,
	enqueue func(context.Context) *txqueue.Pending,
) (smartcv.TxResponse, *types.Receipt, error) {
	if g.receiptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.receiptTimeout)
		defer cancel()
	}

	// The operation observes ctx, so its TxError is awaited instead of ctx.
	pending := enqueue(ctx)
	receipt, err := pending.Result()
	if err != nil {
		return smartcv.TxResponse{}, nil, err
	}
	nonce, _ := pending.Nonce()
	return txResponse(pending.Sender(), nonce, receipt), receipt, nil
}

func txResponse(sender common.Address, nonce uint64, receipt *types.Receipt) smartcv.TxResponse {
	resp := smartcv.TxResponse{
		From:   sender.Hex(),
		Nonce:  nonce,
		TxHash: receipt.TxHash,
	}
	if receipt.BlockNumber != nil {
		resp.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return resp
}

// tokenPrice returns the price in wei of the given amount of tokens.
func tokenPrice(tokens int64) *big.Int {
	wei := new(big.Int).Mul(big.NewInt(tokens), big.NewInt(1000000000000000000))
	return wei.Div(wei, big.NewInt(smartcv.TokensPerEther))
}
