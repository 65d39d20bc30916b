package middleware

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// Cacher is the read/write surface ResponseCache needs. *cache.Cache
// satisfies it.
type Cacher interface {
	Key(path, userID string) string
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
}

// ResponseCache serves GET responses from the cache when present and
// captures successful misses for storage, keyed by request path plus the
// authenticated user. Non-GET requests pass through untouched.
func ResponseCache(c Cacher) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || c == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := c.Key(r.URL.Path, UserID(r.Context()))
			if payload, ok := c.Get(r.Context(), key); ok {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(payload)
				return
			}

			rec := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			if rec.status == http.StatusOK {
				c.Set(r.Context(), key, rec.body.Bytes())
			}
		})
	}
}

// captureWriter duplicates the response body so a successful payload can be
// stored after the handler runs.
type captureWriter struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (cw *captureWriter) WriteHeader(status int) {
	cw.status = status
	cw.ResponseWriter.WriteHeader(status)
}

func (cw *captureWriter) Write(p []byte) (int, error) {
	cw.body.Write(p)
	return cw.ResponseWriter.Write(p)
}
