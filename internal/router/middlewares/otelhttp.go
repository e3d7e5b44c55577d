package middlewares

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/smartcv/go-smartcv/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

// OtelHTTP wraps the handler h with OTEL metrics labeled by operation and route template.
func OtelHTTP(operation string) func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return otelhttp.NewHandler(&labeledHandler{h: h}, operation)
	}
}

type labeledHandler struct {
	h http.Handler
}

func (lh *labeledHandler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	labeler, _ := otelhttp.LabelerFromContext(r.Context())
	labeler.Add(metrics.BaseAttrs...)
	// The template keeps wallet addresses out of the label values.
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			labeler.Add(attribute.String("http.route", tpl))
		}
	}
	lh.h.ServeHTTP(rw, r)
}
