package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	called := false
	h := CORS(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodOptions, "/api/whitelist", nil))
	require.False(t, called)
	require.Equal(t, "*", rw.Header().Get("Access-Control-Allow-Origin"))

	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/api/whitelist", nil))
	require.True(t, called)
	require.Equal(t, "GET, POST, OPTIONS", rw.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Trace-ID", rw.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	rw := httptest.NewRecorder()
	CORS(nil).ServeHTTP(rw, httptest.NewRequest(http.MethodOptions, "/api/certificates", nil))
	require.Equal(t, http.StatusNoContent, rw.Code)
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	var hasLogger bool
	h := TraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		hasLogger = log.Ctx(r.Context()) != nil
	}))

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.True(t, hasLogger)

	_, err := uuid.Parse(rw.Header().Get("Trace-ID"))
	require.NoError(t, err)
}

func TestTraceIDPropagation(t *testing.T) {
	t.Parallel()

	var fromCtx string
	h := TraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		fromCtx, _ = r.Context().Value(ContextTraceID).(string)
	}))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set("Trace-ID", incoming)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	require.Equal(t, incoming, rw.Header().Get("Trace-ID"))
	require.Equal(t, incoming, fromCtx)

	req = httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set("Trace-ID", "not-a-uuid")
	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	require.NotEqual(t, "not-a-uuid", rw.Header().Get("Trace-ID"))
	require.Equal(t, rw.Header().Get("Trace-ID"), fromCtx)
}

func TestWithLogging(t *testing.T) {
	t.Parallel()

	h := WithLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/api/wallets/0x01/queue", nil))
	require.Equal(t, http.StatusNotFound, rw.Code)

	h = WithLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))
	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, rw.Code)
}
