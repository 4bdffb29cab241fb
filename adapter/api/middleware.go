package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/inheaven/petservice/pkg/observability"
)

// Request headers carrying tracing identifiers.
const (
	HeaderCorrelationID = "X-Correlation-ID"
	HeaderRequestID     = "X-Request-ID"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogging assigns a request id and a correlation id, honouring an
// incoming X-Correlation-ID, and logs each completed request.
func requestLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := observability.NewRequestContext(r.Context(), r.Header.Get(HeaderCorrelationID))
		w.Header().Set(HeaderRequestID, observability.RequestIDFromContext(ctx))
		w.Header().Set(HeaderCorrelationID, observability.CorrelationIDFromContext(ctx))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.InfoContext(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
