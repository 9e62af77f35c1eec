package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/tellerledger/internal/usecase"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		mw := NewLoggingMiddleware(zerolog.New(&buf))

		handler := chimiddleware.RequestID(mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
		}
		if entry["level"] != tt.level || entry["status"] != float64(tt.status) {
			t.Fatalf("unexpected log entry: %v", entry)
		}
		if id, _ := entry["request_id"].(string); id == "" {
			t.Fatalf("expected request id in log entry: %v", entry)
		}
	}
}

func TestRequestContext(t *testing.T) {
	var got string
	handler := chimiddleware.RequestID(RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = usecase.RequestIDFromContext(r.Context())
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "req-42" {
		t.Fatalf("expected request id to reach the use case context, got %q", got)
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRecovery(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte(`"internal_error"`)) {
		t.Fatalf("expected JSON error body, got %s", rr.Body.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("panic recovered")) {
		t.Fatalf("expected panic to be logged")
	}
}
