package rpcservice

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/smartcv/go-smartcv/internal/smartcv"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/smartcv/go-smartcv/pkg/uimanager"
)

// FundUserRequest is a FundUser request.
type FundUserRequest struct {
	Address string `json:"address"`
}

// WhitelistRequest is a Whitelist request.
type WhitelistRequest struct {
	Address string `json:"address"`
}

// StoreCertificateRequest is a StoreCertificate request.
type StoreCertificateRequest struct {
	Wallet          string `json:"wallet"`
	CertificateHash string `json:"certificate_hash"`
	CID             string `json:"cid"`
}

// VerifyCertificateRequest is a VerifyCertificate request.
type VerifyCertificateRequest struct {
	Verifier        string `json:"verifier"`
	CertificateHash string `json:"certificate_hash"`
}

// TransferRequest is a Transfer request.
type TransferRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	ValueWei string `json:"value_wei"`
}

// QueueStateRequest is a QueueState request.
type QueueStateRequest struct {
	Address string `json:"address"`
}

// RPCService provides the JSON RPC API under the smartcv namespace.
type RPCService struct {
	svc smartcv.SmartCV
}

// NewRPCService creates a new RPCService.
func NewRPCService(svc smartcv.SmartCV) *RPCService {
	return &RPCService{
		svc: svc,
	}
}

// FundUser buys tokens with the master wallet and transfers them to the user.
func (rs *RPCService) FundUser(ctx context.Context, req FundUserRequest) (smartcv.FundUserResponse, error) {
	user, err := txqueue.ParseAddress(req.Address)
	if err != nil {
		return smartcv.FundUserResponse{}, err
	}
	resp, err := rs.svc.FundUser(ctx, user)
	if err != nil {
		return smartcv.FundUserResponse{}, fmt.Errorf("calling FundUser: %v", err)
	}
	return resp, nil
}

// Whitelist whitelists a company with the master wallet.
func (rs *RPCService) Whitelist(ctx context.Context, req WhitelistRequest) (smartcv.TxResponse, error) {
	entity, err := txqueue.ParseAddress(req.Address)
	if err != nil {
		return smartcv.TxResponse{}, err
	}
	resp, err := rs.svc.WhitelistEntity(ctx, entity)
	if err != nil {
		return smartcv.TxResponse{}, fmt.Errorf("calling WhitelistEntity: %v", err)
	}
	return resp, nil
}

// StoreCertificate stores a certificate signed by a managed company wallet.
func (rs *RPCService) StoreCertificate(
	ctx context.Context,
	req StoreCertificateRequest,
) (smartcv.TxResponse, error) {
	company, err := txqueue.ParseAddress(req.Wallet)
	if err != nil {
		return smartcv.TxResponse{}, err
	}
	hash, err := uimanager.NewCertificateHash(req.CertificateHash)
	if err != nil {
		return smartcv.TxResponse{}, fmt.Errorf("parsing certificate hash: %v", err)
	}
	if req.CID == "" {
		return smartcv.TxResponse{}, errors.New("cid is empty")
	}
	resp, err := rs.svc.StoreCertificate(ctx, company, hash, req.CID)
	if err != nil {
		return smartcv.TxResponse{}, fmt.Errorf("calling StoreCertificate: %v", err)
	}
	return resp, nil
}

// VerifyCertificate pays for a certificate lookup with a managed verifier wallet.
func (rs *RPCService) VerifyCertificate(
	ctx context.Context,
	req VerifyCertificateRequest,
) (smartcv.VerifyResponse, error) {
	verifier, err := txqueue.ParseAddress(req.Verifier)
	if err != nil {
		return smartcv.VerifyResponse{}, err
	}
	hash, err := uimanager.NewCertificateHash(req.CertificateHash)
	if err != nil {
		return smartcv.VerifyResponse{}, fmt.Errorf("parsing certificate hash: %v", err)
	}
	resp, err := rs.svc.VerifyCertificate(ctx, verifier, hash)
	if err != nil {
		return smartcv.VerifyResponse{}, fmt.Errorf("calling VerifyCertificate: %v", err)
	}
	return resp, nil
}

// Transfer sends wei from a managed wallet.
func (rs *RPCService) Transfer(ctx context.Context, req TransferRequest) (smartcv.TxResponse, error) {
	from, err := txqueue.ParseAddress(req.From)
	if err != nil {
		return smartcv.TxResponse{}, err
	}
	to, err := txqueue.ParseAddress(req.To)
	if err != nil {
		return smartcv.TxResponse{}, err
	}
	value, ok := new(big.Int).SetString(req.ValueWei, 10)
	if !ok || value.Sign() < 0 {
		return smartcv.TxResponse{}, fmt.Errorf("invalid value %q", req.ValueWei)
	}
	resp, err := rs.svc.Transfer(ctx, from, to, value)
	if err != nil {
		return smartcv.TxResponse{}, fmt.Errorf("calling Transfer: %v", err)
	}
	return resp, nil
}

// QueueState returns the queue snapshot of a managed wallet.
func (rs *RPCService) QueueState(ctx context.Context, req QueueStateRequest) (txqueue.QueueState, error) {
	addr, err := txqueue.ParseAddress(req.Address)
	if err != nil {
		return txqueue.QueueState{}, err
	}
	state, err := rs.svc.QueueState(ctx, addr)
	if err != nil {
		return txqueue.QueueState{}, fmt.Errorf("calling QueueState: %v", err)
	}
	return state, nil
}
