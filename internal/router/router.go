package router

import (
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/mux"
	"github.com/smartcv/go-smartcv/internal/router/controllers"
	"github.com/smartcv/go-smartcv/internal/router/middlewares"
	"github.com/smartcv/go-smartcv/internal/router/rpcservice"
	"github.com/smartcv/go-smartcv/internal/smartcv"
)

// ConfiguredRouter returns a fully configured Router that can be used as an http handler.
func ConfiguredRouter(svc smartcv.SmartCV, rateLimCfg middlewares.RateLimiterConfig) (*Router, error) {
	rateLim, err := middlewares.RateLimitController(rateLimCfg)
	if err != nil {
		return nil, fmt.Errorf("creating rate limit controller middleware: %s", err)
	}

	server := rpc.NewServer()
	if err := server.RegisterName("smartcv", rpcservice.NewRPCService(svc)); err != nil {
		return nil, fmt.Errorf("failed to register a json-rpc service: %s", err)
	}

	controller := controllers.NewController(svc)
	infraController := controllers.NewInfraController()

	// General router configuration.
	router := NewRouter()
	router.Use(middlewares.CORS, middlewares.TraceID, middlewares.ClientIP)

	router.Post("/rpc", func(rw http.ResponseWriter, r *http.Request) {
		server.ServeHTTP(rw, r)
	}, middlewares.WithLogging, middlewares.OtelHTTP("rpc"), rateLim)

	router.Post("/api/token/fund_user", controller.FundUser, middlewares.WithLogging, middlewares.OtelHTTP("FundUser"), rateLim)                             // nolint
	router.Post("/api/whitelist", controller.Whitelist, middlewares.WithLogging, middlewares.OtelHTTP("Whitelist"), rateLim)                                 // nolint
	router.Post("/api/certificates", controller.StoreCertificate, middlewares.WithLogging, middlewares.OtelHTTP("StoreCertificate"), rateLim)                // nolint
	router.Post("/api/verify/verify_certificate", controller.VerifyCertificate, middlewares.WithLogging, middlewares.OtelHTTP("VerifyCertificate"), rateLim) // nolint
	router.Get("/api/certificates/{hash}", controller.GetCertificate, middlewares.WithLogging, middlewares.OtelHTTP("GetCertificate"), rateLim)              // nolint
	router.Get("/api/token/balance/{address}", controller.GetBalance, middlewares.WithLogging, middlewares.OtelHTTP("GetBalance"), rateLim)                  // nolint
	router.Post("/api/wallets/{address}/transfer", controller.Transfer, middlewares.WithLogging, middlewares.OtelHTTP("Transfer"), rateLim)                  // nolint
	router.Get("/api/wallets/{address}/queue", controller.GetQueueState, middlewares.WithLogging, middlewares.OtelHTTP("GetQueueState"), rateLim)            // nolint
	router.Get("/version", infraController.Version, middlewares.WithLogging, middlewares.OtelHTTP("Version"), rateLim)                                       // nolint

	// Health endpoint configuration.
	router.Get("/healthz", healthHandler)
	router.Get("/health", healthHandler)

	return router, nil
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Router provides a nice api around mux.Router.
type Router struct {
	r *mux.Router
}

// NewRouter is a Mux HTTP router constructor.
func NewRouter() *Router {
	r := mux.NewRouter()
	r.PathPrefix("/").Methods(http.MethodOptions) // accept OPTIONS on all routes and do nothing
	return &Router{r: r}
}

// Get creates a subroute on the specified URI that only accepts GET. You can provide specific middlewares.
func (r *Router) Get(uri string, f func(http.ResponseWriter, *http.Request), mid ...mux.MiddlewareFunc) {
	sub := r.r.Path(uri).Subrouter()
	sub.HandleFunc("", f).Methods(http.MethodGet)
	sub.Use(mid...)
}

// Post creates a subroute on the specified URI that only accepts POST. You can provide specific middlewares.
func (r *Router) Post(uri string, f func(http.ResponseWriter, *http.Request), mid ...mux.MiddlewareFunc) {
	sub := r.r.Path(uri).Subrouter()
	sub.HandleFunc("", f).Methods(http.MethodPost)
	sub.Use(mid...)
}

// Use adds middlewares to all routes. Should be used when a middleware should be execute all all routes (e.g. CORS).
func (r *Router) Use(mid ...mux.MiddlewareFunc) {
	r.r.Use(mid...)
}

// Handler returns the configured router http handler.
func (r *Router) Handler() http.Handler {
	return r.r
}
