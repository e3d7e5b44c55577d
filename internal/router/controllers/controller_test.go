package controllers

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"
	"github.com/smartcv/go-smartcv/internal/router/middlewares"
	"github.com/smartcv/go-smartcv/internal/smartcv"
	"github.com/smartcv/go-smartcv/mocks"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	"github.com/smartcv/go-smartcv/pkg/uimanager"
	"github.com/smartcv/go-smartcv/pkg/wallet"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	userAddr    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	companyAddr = common.HexToAddress("0x2222222222222222222222222222222222222222")
	certHash    = "0x" + strings.Repeat("ab", 32)
)

func TestFundUser(t *testing.T) {
	t.Parallel()

	svc := mocks.NewSmartCV(t)
	svc.EXPECT().FundUser(mock.Anything, userAddr).Return(smartcv.FundUserResponse{
		Status:      "success",
		ToWallet:    userAddr.Hex(),
		TokenAmount: 100,
		PaidWei:     "10000000000000000",
		TxHashes:    []common.Hash{common.HexToHash("0x01"), common.HexToHash("0x02")},
	}, nil)

	router := newTestRouter(svc)

	rr := serve(router, http.MethodPost, "/api/token/fund_user", fmt.Sprintf(`{"address":"%s"}`, userAddr.Hex()))
	require.Equal(t, http.StatusOK, rr.Code)
	exp := fmt.Sprintf(`{
		"status":"success",
		"toWallet":"%s",
		"tokenAmount":100,
		"paidWei":"10000000000000000",
		"txHashes":["%s","%s"]
	}`, userAddr.Hex(), common.HexToHash("0x01").Hex(), common.HexToHash("0x02").Hex())
	require.JSONEq(t, exp, rr.Body.String())
}

func TestBadInput(t *testing.T) {
	t.Parallel()

	// None of these calls must reach the gateway.
	router := newTestRouter(mocks.NewSmartCV(t))

	type testCase struct {
		name   string
		method string
		path   string
		body   string
	}
	cases := []testCase{
		{name: "fund-malformed-body", method: http.MethodPost, path: "/api/token/fund_user", body: "{"},
		{name: "fund-bad-address", method: http.MethodPost, path: "/api/token/fund_user", body: `{"address":"0x12"}`},
		{name: "whitelist-empty", method: http.MethodPost, path: "/api/whitelist", body: `{}`},
		{
			name:   "certificate-bad-hash",
			method: http.MethodPost,
			path:   "/api/certificates",
			body:   fmt.Sprintf(`{"wallet":"%s","certificateHash":"0x1234","cid":"Qm"}`, companyAddr.Hex()),
		},
		{
			name:   "certificate-empty-cid",
			method: http.MethodPost,
			path:   "/api/certificates",
			body:   fmt.Sprintf(`{"wallet":"%s","certificateHash":"%s"}`, companyAddr.Hex(), certHash),
		},
		{
			name:   "transfer-bad-value",
			method: http.MethodPost,
			path:   fmt.Sprintf("/api/wallets/%s/transfer", companyAddr.Hex()),
			body:   fmt.Sprintf(`{"to":"%s","valueWei":"ten"}`, userAddr.Hex()),
		},
		{
			name:   "transfer-negative-value",
			method: http.MethodPost,
			path:   fmt.Sprintf("/api/wallets/%s/transfer", companyAddr.Hex()),
			body:   fmt.Sprintf(`{"to":"%s","valueWei":"-1"}`, userAddr.Hex()),
		},
		{
			name:   "verify-bad-verifier",
			method: http.MethodPost,
			path:   "/api/verify/verify_certificate",
			body:   fmt.Sprintf(`{"verifier":"bob","certificateHash":"%s"}`, certHash),
		},
		{
			name:   "verify-bad-hash",
			method: http.MethodPost,
			path:   "/api/verify/verify_certificate",
			body:   fmt.Sprintf(`{"verifier":"%s","certificateHash":"0xab"}`, userAddr.Hex()),
		},
		{name: "queue-bad-address", method: http.MethodGet, path: "/api/wallets/foo/queue"},
		{name: "balance-bad-address", method: http.MethodGet, path: "/api/token/balance/0xzz"},
		{name: "certificate-zero-hash", method: http.MethodGet, path: "/api/certificates/0x" + strings.Repeat("00", 32)},
	}

	for _, tc := range cases {
		rr := serve(router, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusBadRequest, rr.Code, tc.name)
		require.Contains(t, rr.Body.String(), `"message"`, tc.name)
	}
}

func TestWhitelist(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewSmartCV(t)
		svc.EXPECT().WhitelistEntity(mock.Anything, companyAddr).Return(smartcv.TxResponse{
			From:        "0x3333333333333333333333333333333333333333",
			Nonce:       4,
			TxHash:      common.HexToHash("0x0a"),
			BlockNumber: 12,
		}, nil)

		rr := serve(newTestRouter(svc), http.MethodPost, "/api/whitelist", fmt.Sprintf(`{"address":"%s"}`, companyAddr.Hex()))
		require.Equal(t, http.StatusOK, rr.Code)
		exp := fmt.Sprintf(`{
			"from":"0x3333333333333333333333333333333333333333",
			"nonce":4,
			"txHash":"%s",
			"blockNumber":12
		}`, common.HexToHash("0x0a").Hex())
		require.JSONEq(t, exp, rr.Body.String())
	})

	t.Run("already-whitelisted", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewSmartCV(t)
		svc.EXPECT().WhitelistEntity(mock.Anything, companyAddr).
			Return(smartcv.TxResponse{}, fmt.Errorf("%s: %w", companyAddr.Hex(), smartcv.ErrAlreadyWhitelisted))

		rr := serve(newTestRouter(svc), http.MethodPost, "/api/whitelist", fmt.Sprintf(`{"address":"%s"}`, companyAddr.Hex()))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Contains(t, rr.Body.String(), "entity already whitelisted")
	})

	t.Run("queue-failure", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewSmartCV(t)
		svc.EXPECT().WhitelistEntity(mock.Anything, companyAddr).
			Return(smartcv.TxResponse{}, &txqueue.TxError{Kind: txqueue.ErrNetwork, Err: errors.New("connection refused")})

		rr := serve(newTestRouter(svc), http.MethodPost, "/api/whitelist", fmt.Sprintf(`{"address":"%s"}`, companyAddr.Hex()))
		require.Equal(t, http.StatusInternalServerError, rr.Code)
		require.Contains(t, rr.Body.String(), "Whitelisting failed")
		require.Contains(t, rr.Body.String(), "connection refused")
		require.NotContains(t, rr.Body.String(), "txHash")
	})

	t.Run("reverted", func(t *testing.T) {
		t.Parallel()

		txHash := common.HexToHash("0x0e")
		svc := mocks.NewSmartCV(t)
		svc.EXPECT().WhitelistEntity(mock.Anything, companyAddr).
			Return(smartcv.TxResponse{}, &txqueue.TxError{
				Kind:   txqueue.ErrTransactionReverted,
				Nonce:  4,
				TxHash: txHash,
				Err:    errors.New("status 0"),
			})

		traceID := "5b0e1c9e-2b7a-4d57-9a52-6f2f0d6b1c11"
		req := httptest.NewRequest(http.MethodPost, "/api/whitelist", strings.NewReader(fmt.Sprintf(`{"address":"%s"}`, companyAddr.Hex())))
		req.Header.Set("Trace-ID", traceID)
		rr := httptest.NewRecorder()
		middlewares.TraceID(newTestRouter(svc)).ServeHTTP(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		require.Contains(t, rr.Body.String(), fmt.Sprintf(`"txHash":"%s"`, txHash.Hex()))
		require.Contains(t, rr.Body.String(), fmt.Sprintf(`"traceId":"%s"`, traceID))
	})
}

func TestStoreCertificate(t *testing.T) {
	t.Parallel()

	hash, err := uimanager.NewCertificateHash(certHash)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewSmartCV(t)
		svc.EXPECT().StoreCertificate(mock.Anything, companyAddr, hash, "QmCID").Return(smartcv.TxResponse{
			From:        companyAddr.Hex(),
			Nonce:       0,
			TxHash:      common.HexToHash("0x0b"),
			BlockNumber: 3,
		}, nil)

		body := fmt.Sprintf(`{"wallet":"%s","certificateHash":"%s","cid":"QmCID"}`, strings.ToLower(companyAddr.Hex()), certHash)
		rr := serve(newTestRouter(svc), http.MethodPost, "/api/certificates", body)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), companyAddr.Hex())
	})

	t.Run("unknown-wallet", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewSmartCV(t)
		svc.EXPECT().StoreCertificate(mock.Anything, companyAddr, hash, "QmCID").
			Return(smartcv.TxResponse{}, fmt.Errorf("looking up signer: %w", wallet.ErrWalletNotFound))

		body := fmt.Sprintf(`{"wallet":"%s","certificateHash":"%s","cid":"QmCID"}`, companyAddr.Hex(), certHash)
		rr := serve(newTestRouter(svc), http.MethodPost, "/api/certificates", body)
		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetCertificate(t *testing.T) {
	t.Parallel()

	hash, err := uimanager.NewCertificateHash(certHash)
	require.NoError(t, err)

	svc := mocks.NewSmartCV(t)
	svc.EXPECT().GetCertificate(mock.Anything, hash).Return(smartcv.CertificateResponse{
		Hash:   hash.String(),
		Exists: true,
		CID:    "QmCID",
		Info:   "CID: QmCID",
	}, nil).Once()
	svc.EXPECT().GetCertificate(mock.Anything, hash).Return(smartcv.CertificateResponse{Hash: hash.String()}, nil).Once()
	router := newTestRouter(svc)

	rr := serve(router, http.MethodGet, "/api/certificates/"+certHash, "")
	require.Equal(t, http.StatusOK, rr.Code)
	exp := fmt.Sprintf(`{"certificateHash":"%s","exists":true,"cid":"QmCID","info":"CID: QmCID"}`, hash.String())
	require.JSONEq(t, exp, rr.Body.String())

	rr = serve(router, http.MethodGet, "/api/certificates/"+certHash, "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVerifyCertificate(t *testing.T) {
	t.Parallel()

	hash, err := uimanager.NewCertificateHash(certHash)
	require.NoError(t, err)
	body := fmt.Sprintf(`{"verifier":"%s","certificateHash":"%s"}`, userAddr.Hex(), certHash)

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewSmartCV(t)
		svc.EXPECT().VerifyCertificate(mock.Anything, userAddr, hash).Return(smartcv.VerifyResponse{
			Verified: true,
			Verifier: userAddr.Hex(),
			Hash:     certHash,
			CID:      "QmCID",
			Info:     "CID: QmCID",
			TxHashes: []common.Hash{common.HexToHash("0x01"), common.HexToHash("0x02")},
		}, nil)

		rr := serve(newTestRouter(svc), http.MethodPost, "/api/verify/verify_certificate", body)
		require.Equal(t, http.StatusOK, rr.Code)
		exp := fmt.Sprintf(`{
			"verified":true,
			"verifier":"%s",
			"certificateHash":"%s",
			"cid":"QmCID",
			"info":"CID: QmCID",
			"txHashes":["%s","%s"]
		}`, userAddr.Hex(), certHash, common.HexToHash("0x01").Hex(), common.HexToHash("0x02").Hex())
		require.JSONEq(t, exp, rr.Body.String())
	})

	errCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "insufficient-tokens", err: fmt.Errorf("0x01: %w", smartcv.ErrInsufficientTokens), status: http.StatusPaymentRequired},
		{name: "unknown-certificate", err: fmt.Errorf("0x02: %w", smartcv.ErrCertificateNotFound), status: http.StatusNotFound},
		{name: "unknown-verifier", err: wallet.ErrWalletNotFound, status: http.StatusNotFound},
		{name: "no-lookup-event", err: uimanager.ErrCertificateLookupNotFound, status: http.StatusInternalServerError},
	}
	for _, tc := range errCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewSmartCV(t)
			svc.EXPECT().VerifyCertificate(mock.Anything, userAddr, hash).Return(smartcv.VerifyResponse{}, tc.err)

			rr := serve(newTestRouter(svc), http.MethodPost, "/api/verify/verify_certificate", body)
			require.Equal(t, tc.status, rr.Code)
			require.Contains(t, rr.Body.String(), "Verification failed")
		})
	}
}

func TestGetBalance(t *testing.T) {
	t.Parallel()

	svc := mocks.NewSmartCV(t)
	svc.EXPECT().GetBalance(mock.Anything, userAddr).Return(smartcv.BalanceResponse{
		Address: userAddr.Hex(),
		Balance: "100",
	}, nil)

	rr := serve(newTestRouter(svc), http.MethodGet, "/api/token/balance/"+userAddr.Hex(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, fmt.Sprintf(`{"address":"%s","balance":"100"}`, userAddr.Hex()), rr.Body.String())
}

func TestTransfer(t *testing.T) {
	t.Parallel()

	svc := mocks.NewSmartCV(t)
	svc.EXPECT().
		Transfer(mock.Anything, companyAddr, userAddr, mock.AnythingOfType("*big.Int")).
		Run(func(_ context.Context, _ common.Address, _ common.Address, value *big.Int) {
			require.Equal(t, int64(1000), value.Int64())
		}).
		Return(smartcv.TxResponse{From: companyAddr.Hex(), Nonce: 1, TxHash: common.HexToHash("0x0c"), BlockNumber: 5}, nil)

	body := fmt.Sprintf(`{"to":"%s","valueWei":"1000"}`, userAddr.Hex())
	rr := serve(newTestRouter(svc), http.MethodPost, fmt.Sprintf("/api/wallets/%s/transfer", companyAddr.Hex()), body)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"nonce":1`)
}

func TestGetQueueState(t *testing.T) {
	t.Parallel()

	next := uint64(7)
	svc := mocks.NewSmartCV(t)
	svc.EXPECT().QueueState(mock.Anything, companyAddr).Return(txqueue.QueueState{
		Address:   companyAddr,
		NextNonce: &next,
		Depth:     2,
	}, nil)

	rr := serve(newTestRouter(svc), http.MethodGet, fmt.Sprintf("/api/wallets/%s/queue", companyAddr.Hex()), "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"next_nonce":7`)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	router := mux.NewRouter()
	router.HandleFunc("/version", NewInfraController().Version)

	rr := serve(router, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"binary_version"`)
}

func newTestRouter(svc smartcv.SmartCV) *mux.Router {
	ctrl := NewController(svc)

	router := mux.NewRouter()
	router.HandleFunc("/api/token/fund_user", ctrl.FundUser).Methods(http.MethodPost)
	router.HandleFunc("/api/whitelist", ctrl.Whitelist).Methods(http.MethodPost)
	router.HandleFunc("/api/certificates", ctrl.StoreCertificate).Methods(http.MethodPost)
	router.HandleFunc("/api/certificates/{hash}", ctrl.GetCertificate).Methods(http.MethodGet)
	router.HandleFunc("/api/verify/verify_certificate", ctrl.VerifyCertificate).Methods(http.MethodPost)
	router.HandleFunc("/api/token/balance/{address}", ctrl.GetBalance).Methods(http.MethodGet)
	router.HandleFunc("/api/wallets/{address}/transfer", ctrl.Transfer).Methods(http.MethodPost)
	router.HandleFunc("/api/wallets/{address}/queue", ctrl.GetQueueState).Methods(http.MethodGet)
	return router
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
