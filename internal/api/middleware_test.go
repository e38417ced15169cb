package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/hyperengineering/solace/internal/auth"
)

var testSecret = []byte("test-secret-for-unit-tests-0123456789")

// mockHandler records the owner that reached it.
func mockHandler(owner *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if owner != nil {
			*owner, _ = OwnerFromContext(r.Context())
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func mustToken(t *testing.T, ownerID string, ttl time.Duration) string {
	t.Helper()
	token, err := auth.GenerateToken(ownerID, testSecret, ttl)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return token
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	// Given: a request carrying a token for owner-1
	var owner string
	handler := AuthMiddleware(testSecret)(mockHandler(&owner))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/batch", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, "owner-1", time.Hour))
	w := httptest.NewRecorder()

	// When: the middleware runs
	handler.ServeHTTP(w, req)

	// Then: the handler sees the owner from the token
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if owner != "owner-1" {
		t.Errorf("owner = %q, want owner-1", owner)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	otherSecret := []byte("a-completely-different-secret-value")
	forged, err := auth.GenerateToken("owner-1", otherSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"lowercase bearer", "bearer " + mustToken(t, "owner-1", time.Hour)},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + forged},
		{"expired", "Bearer " + mustToken(t, "owner-1", -time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			called := false
			handler := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/batch", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if called {
				t.Error("next handler should not be called")
			}
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}

			var p Problem
			if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
				t.Fatalf("failed to unmarshal problem: %v", err)
			}
			if p.Type != "https://solace.app/errors/unauthorized" {
				t.Errorf("type = %q", p.Type)
			}
			if p.Detail != "Missing or invalid bearer token" {
				t.Errorf("detail = %q", p.Detail)
			}

			if strings.Contains(logs.String(), string(testSecret)) {
				t.Error("logs contain the signing secret")
			}
			if tt.header != "" && strings.Contains(logs.String(), tt.header) {
				t.Error("logs contain the Authorization header")
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"extra whitespace", "Bearer   abc  ", "abc"},
		{"empty", "", ""},
		{"no token", "Bearer ", ""},
		{"wrong case", "bearer abc", ""},
		{"basic", "Basic abc", ""},
		{"no space", "Bearerabc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("extractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoggingMiddleware_Fields(t *testing.T) {
	logs := captureLogs(t)

	handler := middleware.RequestID(LoggingMiddleware(mockHandler(nil)))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.RemoteAddr = "192.168.1.100:54321"
	req.Header.Set("Authorization", "Bearer secret-token-value")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if strings.Contains(logs.String(), "secret-token-value") {
		t.Error("logs contain the bearer token")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log as JSON: %v", err)
	}

	if entry["msg"] != "request completed" {
		t.Errorf("msg = %v, want request completed", entry["msg"])
	}
	for _, field := range []string{"request_id", "method", "path", "status", "duration_ms", "remote_addr"} {
		if _, ok := entry[field]; !ok {
			t.Errorf("missing expected field: %s", field)
		}
	}
	if entry["request_id"] == "" {
		t.Error("request_id is empty")
	}
	if entry["remote_addr"] != "192.168.1.100:54321" {
		t.Errorf("remote_addr = %v", entry["remote_addr"])
	}
}

func TestLoggingMiddleware_LogLevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusBadRequest, "WARN"},
		{http.StatusRequestEntityTooLarge, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			logs := captureLogs(t)
			handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

			if !strings.Contains(logs.String(), `"level":"`+tt.level+`"`) {
				t.Errorf("expected %s level, got: %s", tt.level, logs.String())
			}
		})
	}
}

func TestRecoveryMiddleware_NoPanic(t *testing.T) {
	handler := RecoveryMiddleware(mockHandler(nil))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", w.Body.String())
	}
}

func TestRecoveryMiddleware_PanicNoLeak(t *testing.T) {
	logs := captureLogs(t)

	secretMessage := "super-secret-database-password-12345"
	handler := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(secretMessage)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sync/batch", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if strings.Contains(w.Body.String(), secretMessage) {
		t.Error("response body contains the panic message")
	}

	var p Problem
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if p.Type != "https://solace.app/errors/internal-error" {
		t.Errorf("type = %q", p.Type)
	}
	if p.Detail != "Internal Server Error" {
		t.Errorf("detail = %q, want generic 'Internal Server Error'", p.Detail)
	}

	// Logs keep the panic value for debugging.
	if !strings.Contains(logs.String(), secretMessage) {
		t.Error("expected panic message in logs")
	}
}

func TestRecoveryMiddleware_AbortHandlerRepanics(t *testing.T) {
	handler := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("recovered = %v, want http.ErrAbortHandler", rec)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	t.Error("expected re-panic")
}
