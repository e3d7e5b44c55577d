package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const traceIDHeader = "Trace-ID"

// TraceID attaches a trace id to the request logger and echoes it in the Trace-ID response header.
// A valid UUID sent by the client in the same header is reused, so a frontend can correlate
// its request with the transaction logs.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID, err := uuid.Parse(r.Header.Get(traceIDHeader))
		if err != nil {
			traceID, err = uuid.NewRandom()
			if err != nil {
				log.Warn().Err(err).Msg("failed to generate a trace id")
				next.ServeHTTP(w, r)
				return
			}
		}

		ctx := context.WithValue(r.Context(), ContextTraceID, traceID.String())
		logger := log.With().Str("traceId", traceID.String()).Logger()
		r = r.WithContext(logger.WithContext(ctx))
		w.Header().Set(traceIDHeader, traceID.String())

		next.ServeHTTP(w, r)
	})
}
