package restapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey carries the request id through the request context; the
// logging middleware reads it back when emitting the per-request line.
const RequestIDKey contextKey = "request_id"

// RequestIDMiddleware tags every request with an id and echoes it in the
// X-Request-ID response header. An id supplied by the client is kept, so a
// caller can correlate its own trace with the server log.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := context.WithValue(r.Context(), RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
