package middlewares

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// WithLogging logs requests and responses that contain useful information.
func WithLogging(h http.Handler) http.Handler {
	handler := func(rw http.ResponseWriter, req *http.Request) {
		start := time.Now()
		loggedRW := &responseWriterLogger{
			ResponseWriter: rw,
			statusCode:     http.StatusOK,
		}
		h.ServeHTTP(loggedRW, req)

		logger := log.Ctx(req.Context())
		if loggedRW.statusCode >= http.StatusBadRequest {
			logger.Warn().
				Int("statusCode", loggedRW.statusCode).
				Str("path", req.URL.Path).
				Dur("latency", time.Since(start)).
				Msg("non-2xx status code response")
			return
		}
		logger.Debug().
			Int("statusCode", loggedRW.statusCode).
			Str("path", req.URL.Path).
			Dur("latency", time.Since(start)).
			Msg("request served")
	}
	return http.HandlerFunc(handler)
}

type responseWriterLogger struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseWriterLogger) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.statusCode = statusCode
}
