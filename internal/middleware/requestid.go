package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request id to and from clients.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied ids so a hostile header
// cannot bloat every access log line.
const maxRequestIDLength = 64

type requestIDKey struct{}

// RequestID tags each request with an id that correlates access logs
// with client-side reports. A client-supplied id is kept when it fits
// the length bound; anything else is replaced with a fresh UUID. The id
// is echoed on the response so the demo front-end can surface it in
// error toasts.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request id from the context, or the empty
// string when the middleware did not run.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
