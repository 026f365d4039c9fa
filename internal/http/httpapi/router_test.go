package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"creatorstudio/internal/http/handlers"
	"creatorstudio/internal/infra"
	"creatorstudio/internal/infra/credentials"
	"creatorstudio/internal/media"
	"creatorstudio/internal/shell"
)

func newRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	registry := shell.NewRegistry(context.Background(), shell.RegistryOptions{Bridge: credentials.NewStore("key")})
	app := handlers.NewApp(&infra.Config{DefaultLocale: "en", RateLimitPerMin: 2}, zerolog.Nop(), registry, media.NewMemoryStore(), nil)
	return NewRouter(app, opts)
}

func TestRouterRoutes(t *testing.T) {
	router := newRouter(t, Options{})
	tests := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/v1/healthz", http.StatusOK},
		{http.MethodGet, "/v1/shell", http.StatusOK},
		{http.MethodGet, "/v1/nope", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			if rr.Code != tc.code {
				t.Fatalf("%s %s = %d, want %d", tc.method, tc.path, rr.Code, tc.code)
			}
			if rr.Header().Get("X-Request-ID") == "" {
				t.Fatal("missing request id")
			}
		})
	}
}

func TestRouterRateLimitsAPI(t *testing.T) {
	router := newRouter(t, Options{})
	var last int
	for range 3 {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/options", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		router.ServeHTTP(rr, req)
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d", last)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	req.RemoteAddr = "203.0.113.7:5000"
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz should not be limited, got %d", rr.Code)
	}
}

func TestRouterMountsMCP(t *testing.T) {
	called := false
	router := newRouter(t, Options{MCP: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	})})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	if !called || rr.Code != http.StatusAccepted {
		t.Fatalf("mcp handler not reached: %d", rr.Code)
	}
}
