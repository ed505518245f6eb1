package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/pkg/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitRejectsWithEnvelope(t *testing.T) {
	h := middleware.RateLimit(2, time.Minute)(okHandler())

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/products/", nil)
		req.RemoteAddr = ip + ":4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("198.51.100.7").Code)
	assert.Equal(t, http.StatusOK, do("198.51.100.7").Code)

	rec := do("198.51.100.7")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusTooManyRequests, body.Status)
	assert.NotEmpty(t, body.Message)

	// A different client still has its own budget.
	assert.Equal(t, http.StatusOK, do("198.51.100.8").Code)
}

func TestRateLimitUsesForwardedFor(t *testing.T) {
	h := middleware.RateLimit(1, time.Minute)(okHandler())

	do := func(fwd string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/products/", nil)
		req.RemoteAddr = "10.0.0.1:4000" // the proxy, shared by everyone
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("203.0.113.5").Code)
	assert.Equal(t, http.StatusTooManyRequests, do("203.0.113.5, 10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, do("203.0.113.6").Code)
}

func TestCORSPreflight(t *testing.T) {
	opts := middleware.CORSOptions{
		AllowedOrigins: []string{"https://shop.example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}
	h := middleware.CORS(opts)(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/products/", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")

	// Unlisted origins get no CORS headers.
	req = httptest.NewRequest(http.MethodGet, "/products/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
