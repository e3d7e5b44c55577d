package controllers

import (
	"encoding/json"
	goerrors "errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/smartcv/go-smartcv/internal/router/middlewares"
	"github.com/smartcv/go-smartcv/internal/smartcv"
	"github.com/smartcv/go-smartcv/pkg/errors"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/smartcv/go-smartcv/pkg/uimanager"
	"github.com/smartcv/go-smartcv/pkg/wallet"
)

// Controller defines the HTTP handlers of the SmartCV gateway.
type Controller struct {
	smartcv smartcv.SmartCV
}

// NewController creates a new Controller.
func NewController(svc smartcv.SmartCV) *Controller {
	return &Controller{
		smartcv: svc,
	}
}

type addressRequest struct {
	Address string `json:"address"`
}

type certificateRequest struct {
	Wallet          string `json:"wallet"`
	CertificateHash string `json:"certificateHash"`
	CID             string `json:"cid"`
}

type verifyRequest struct {
	Verifier        string `json:"verifier"`
	CertificateHash string `json:"certificateHash"`
}

type transferRequest struct {
	To       string `json:"to"`
	ValueWei string `json:"valueWei"`
}

// FundUser handles the POST /api/token/fund_user call.
func (c *Controller) FundUser(rw http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(rw, r, err, "Invalid request body")
		return
	}
	user, err := txqueue.ParseAddress(req.Address)
	if err != nil {
		badRequest(rw, r, err, "Invalid address")
		return
	}

	resp, err := c.smartcv.FundUser(r.Context(), user)
	if err != nil {
		serviceError(rw, r, err, "Token purchase failed")
		return
	}
	ok(rw, resp)
}

// Whitelist handles the POST /api/whitelist call.
func (c *Controller) Whitelist(rw http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(rw, r, err, "Invalid request body")
		return
	}
	entity, err := txqueue.ParseAddress(req.Address)
	if err != nil {
		badRequest(rw, r, err, "Invalid address")
		return
	}

	resp, err := c.smartcv.WhitelistEntity(r.Context(), entity)
	if err != nil {
		serviceError(rw, r, err, "Whitelisting failed")
		return
	}
	ok(rw, resp)
}

// StoreCertificate handles the POST /api/certificates call.
func (c *Controller) StoreCertificate(rw http.ResponseWriter, r *http.Request) {
	var req certificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(rw, r, err, "Invalid request body")
		return
	}
	company, err := txqueue.ParseAddress(req.Wallet)
	if err != nil {
		badRequest(rw, r, err, "Invalid wallet address")
		return
	}
	hash, err := uimanager.NewCertificateHash(req.CertificateHash)
	if err != nil {
		badRequest(rw, r, err, "Invalid certificate hash")
		return
	}
	if req.CID == "" {
		badRequest(rw, r, goerrors.New("empty cid"), "Empty CID")
		return
	}

	resp, err := c.smartcv.StoreCertificate(r.Context(), company, hash, req.CID)
	if err != nil {
		serviceError(rw, r, err, "Storing certificate failed")
		return
	}
	ok(rw, resp)
}

// VerifyCertificate handles the POST /api/verify/verify_certificate call.
func (c *Controller) VerifyCertificate(rw http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(rw, r, err, "Invalid request body")
		return
	}
	verifier, err := txqueue.ParseAddress(req.Verifier)
	if err != nil {
		badRequest(rw, r, err, "Invalid verifier address")
		return
	}
	hash, err := uimanager.NewCertificateHash(req.CertificateHash)
	if err != nil {
		badRequest(rw, r, err, "Invalid certificate hash")
		return
	}

	resp, err := c.smartcv.VerifyCertificate(r.Context(), verifier, hash)
	if err != nil {
		serviceError(rw, r, err, "Verification failed")
		return
	}
	ok(rw, resp)
}

// GetCertificate handles the GET /api/certificates/{hash} call.
func (c *Controller) GetCertificate(rw http.ResponseWriter, r *http.Request) {
	hash, err := uimanager.NewCertificateHash(mux.Vars(r)["hash"])
	if err != nil {
		badRequest(rw, r, err, "Invalid certificate hash")
		return
	}

	resp, err := c.smartcv.GetCertificate(r.Context(), hash)
	if err != nil {
		serviceError(rw, r, err, "Fetching certificate failed")
		return
	}
	if !resp.Exists {
		rw.WriteHeader(http.StatusNotFound)
		return
	}
	ok(rw, resp)
}

// GetBalance handles the GET /api/token/balance/{address} call.
func (c *Controller) GetBalance(rw http.ResponseWriter, r *http.Request) {
	user, err := txqueue.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		badRequest(rw, r, err, "Invalid address")
		return
	}

	resp, err := c.smartcv.GetBalance(r.Context(), user)
	if err != nil {
		serviceError(rw, r, err, "Fetching balance failed")
		return
	}
	ok(rw, resp)
}

// Transfer handles the POST /api/wallets/{address}/transfer call.
func (c *Controller) Transfer(rw http.ResponseWriter, r *http.Request) {
	from, err := txqueue.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		badRequest(rw, r, err, "Invalid wallet address")
		return
	}
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(rw, r, err, "Invalid request body")
		return
	}
	to, err := txqueue.ParseAddress(req.To)
	if err != nil {
		badRequest(rw, r, err, "Invalid recipient address")
		return
	}
	value, isValid := new(big.Int).SetString(req.ValueWei, 10)
	if !isValid || value.Sign() < 0 {
		badRequest(rw, r, goerrors.New("invalid value"), "Invalid value")
		return
	}

	resp, err := c.smartcv.Transfer(r.Context(), from, to, value)
	if err != nil {
		serviceError(rw, r, err, "Transfer failed")
		return
	}
	ok(rw, resp)
}

// GetQueueState handles the GET /api/wallets/{address}/queue call.
func (c *Controller) GetQueueState(rw http.ResponseWriter, r *http.Request) {
	addr, err := txqueue.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		badRequest(rw, r, err, "Invalid wallet address")
		return
	}

	state, err := c.smartcv.QueueState(r.Context(), addr)
	if err != nil {
		serviceError(rw, r, err, "Fetching queue state failed")
		return
	}
	ok(rw, state)
}

func ok(rw http.ResponseWriter, body interface{}) {
	rw.Header().Set("Content-type", "application/json")
	rw.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(rw).Encode(body)
}

func badRequest(rw http.ResponseWriter, r *http.Request, err error, msg string) {
	rw.Header().Set("Content-type", "application/json")
	rw.WriteHeader(http.StatusBadRequest)
	log.Ctx(r.Context()).
		Warn().
		Err(err).
		Msg(msg)

	_ = json.NewEncoder(rw).Encode(errors.ServiceError{Message: msg, TraceID: traceID(r)})
}

func serviceError(rw http.ResponseWriter, r *http.Request, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case goerrors.Is(err, wallet.ErrWalletNotFound), goerrors.Is(err, smartcv.ErrCertificateNotFound):
		status = http.StatusNotFound
	case goerrors.Is(err, smartcv.ErrAlreadyWhitelisted):
		status = http.StatusBadRequest
	case goerrors.Is(err, smartcv.ErrInsufficientTokens):
		status = http.StatusPaymentRequired
	}

	rw.Header().Set("Content-type", "application/json")
	rw.WriteHeader(status)
	log.Ctx(r.Context()).
		Error().
		Err(err).
		Int("status", status).
		Msg(msg)

	body := errors.ServiceError{Message: msg + ": " + err.Error(), TraceID: traceID(r)}
	var txErr *txqueue.TxError
	if goerrors.As(err, &txErr) && txErr.TxHash != (common.Hash{}) {
		body.TxHash = txErr.TxHash.Hex()
	}
	_ = json.NewEncoder(rw).Encode(body)
}

func traceID(r *http.Request) string {
	id, _ := r.Context().Value(middlewares.ContextTraceID).(string)
	return id
}
