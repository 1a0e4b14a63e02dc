package middleware

import (
	"log/slog"
	"net/http"

	"github.com/creatorlab/taskgate/internal/api/shared"
)

// quietPaths are high-frequency probe endpoints excluded from request
// logging.
var quietPaths = map[string]bool{
	"/health": true,
}

// Trace adds a trace ID to the request context and logs the request.
// Apply early in the chain so every handler sees the trace ID.
func Trace(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())

			if !quietPaths[r.URL.Path] {
				logger.Debug("request started",
					slog.String("trace_id", shared.GetTraceID(ctx)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
