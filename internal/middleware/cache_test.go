package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeCacher struct {
	entries map[string][]byte
}

func (f *fakeCacher) Key(path, userID string) string { return path + ":" + userID }

func (f *fakeCacher) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, ok := f.entries[key]
	return payload, ok
}

func (f *fakeCacher) Set(ctx context.Context, key string, payload []byte) {
	f.entries[key] = payload
}

func TestResponseCache(t *testing.T) {
	newHandler := func(called *int, status int, body string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*called++
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		})
	}

	t.Run("second read is served from the cache", func(t *testing.T) {
		cacher := &fakeCacher{entries: map[string][]byte{}}
		called := 0
		wrapped := ResponseCache(cacher)(newHandler(&called, http.StatusOK, `{"data":"payload"}`))

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/contracts", nil)
			wrapped.ServeHTTP(rec, req.WithContext(WithUserID(req.Context(), "u1")))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if rec.Body.String() != `{"data":"payload"}` {
				t.Fatalf("body = %q on request %d", rec.Body.String(), i+1)
			}
		}
		if called != 1 {
			t.Errorf("handler called %d times, want 1", called)
		}
	})

	t.Run("keys are scoped per user", func(t *testing.T) {
		cacher := &fakeCacher{entries: map[string][]byte{}}
		called := 0
		wrapped := ResponseCache(cacher)(newHandler(&called, http.StatusOK, "ok"))

		for _, userID := range []string{"u1", "u2"} {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/cashkicks", nil)
			wrapped.ServeHTTP(rec, req.WithContext(WithUserID(req.Context(), userID)))
		}
		if called != 2 {
			t.Errorf("handler called %d times, want 2 (one per user)", called)
		}
	})

	t.Run("non-200 responses are not stored", func(t *testing.T) {
		cacher := &fakeCacher{entries: map[string][]byte{}}
		called := 0
		wrapped := ResponseCache(cacher)(newHandler(&called, http.StatusInternalServerError, "boom"))

		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cashkicks", nil))
		if len(cacher.entries) != 0 {
			t.Errorf("error response was cached: %v", cacher.entries)
		}
	})

	t.Run("writes pass through untouched", func(t *testing.T) {
		cacher := &fakeCacher{entries: map[string][]byte{}}
		called := 0
		wrapped := ResponseCache(cacher)(newHandler(&called, http.StatusCreated, "created"))

		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cashkicks", nil))
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if len(cacher.entries) != 0 {
			t.Errorf("write response was cached: %v", cacher.entries)
		}
	})
}
