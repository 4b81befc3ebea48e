// Package reqid tags every HTTP request with an id that flows through
// the context, the X-Request-ID response header, and the structured logs.
package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header carries the request id across service boundaries.
const Header = "X-Request-ID"

type ctxKey struct{}

// FromCtx returns the request id stored in ctx, or "" when absent.
func FromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware assigns each request an id and echoes it in the response
// header. An id supplied by the caller is kept so traces line up across
// services.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(Header, id)

			ctx := context.WithValue(r.Context(), ctxKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
