package httpx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSMiddleware(t *testing.T) {
	mw := CORSMiddleware([]string{"https://app.example.com"})

	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users", nil)
		r.Header.Set("Origin", "https://app.example.com")

		mw(okHandler()).ServeHTTP(w, r)

		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets none", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users", nil)
		r.Header.Set("Origin", "https://evil.example.com")

		mw(okHandler()).ServeHTTP(w, r)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodOptions, "/users", nil)
		r.Header.Set("Origin", "https://app.example.com")

		mw(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, called)
	})
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	mw := RequestSizeLimitMiddleware(64)

	t.Run("small body passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"A"}`))

		mw(okHandler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(strings.Repeat("x", 200)))

		mw(okHandler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates an id", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r)
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users", nil)

		RequestIDMiddleware(next).ServeHTTP(w, r)

		assert.NotEmpty(t, seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
	})

	t.Run("keeps a caller-supplied id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users", nil)
		r.Header.Set("X-Request-Id", "caller-id")

		RequestIDMiddleware(okHandler()).ServeHTTP(w, r)

		assert.Equal(t, "caller-id", w.Header().Get("X-Request-Id"))
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := zerolog.New(io.Discard)
	mw := RecoveryMiddleware(logger)

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/users", nil)

	mw(panicking).ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
