package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/monolog-ai/monolog/internal/log"
)

// CorrelationHeader carries the correlation id across service boundaries.
const CorrelationHeader = "X-Correlation-ID"

// Correlation attaches a correlation id to every request context. An id
// supplied by the caller is reused, otherwise a fresh one is generated.
// The id is echoed back in the response headers. The chi request id is
// copied onto the context as well, so context-aware loggers below the
// handler tag their lines with both ids.
func Correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := log.WithCorrelationID(r.Context(), id)
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			ctx = log.WithRequestID(ctx, reqID)
		}
		w.Header().Set(CorrelationHeader, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
