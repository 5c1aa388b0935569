package middleware

import (
	"io"
	"net/http"
)

// MaxRequestBodyBytes bounds JSON request bodies. A full workout with its sets is far below it.
const MaxRequestBodyBytes = 1 << 20

// DrainAndCloseRequest rejects oversized bodies up front, caps the rest, and drains
// whatever the handler left unread so keep-alive connections can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > MaxRequestBodyBytes {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
			r.Body = body
			defer func() {
				_, _ = io.Copy(io.Discard, body)
				_ = body.Close()
			}()

			next.ServeHTTP(w, r)
		})
	}
}
