package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestIDPropagates(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "abc-123" || rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("request id = %q / %q", seen, rec.Header().Get("X-Request-ID"))
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(seen) != 36 {
		t.Fatalf("expected generated uuid, got %q", seen)
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := CORS([]string{"https://studio.example/"})(next)

	preflight := httptest.NewRequest(http.MethodOptions, "/v1/shell", nil)
	preflight.Header.Set("Origin", "https://studio.example")
	preflight.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, preflight)
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != "https://studio.example" {
		t.Fatalf("preflight = %d %q", rec.Code, rec.Header().Get("Access-Control-Allow-Origin"))
	}

	blocked := httptest.NewRequest(http.MethodOptions, "/v1/shell", nil)
	blocked.Header.Set("Origin", "https://evil.example")
	blocked.Header.Set("Access-Control-Request-Method", "POST")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, blocked)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("blocked preflight = %d", rec.Code)
	}

	simple := httptest.NewRequest(http.MethodGet, "/v1/shell", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, simple)
	if rec.Code != http.StatusTeapot || rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("same-origin request = %d %q", rec.Code, rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	handler := RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	})))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/views/script", nil))
	line := buf.String()
	for _, want := range []string{`"status":202`, `"path":"/v1/views/script"`, `"bytes":2`, `"request_id":"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}
