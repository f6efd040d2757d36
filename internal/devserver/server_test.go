package devserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Options{Host: "127.0.0.1", Port: 8080, Env: "test", Project: "test-project"}, zerolog.Nop())
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding health body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["project"] != "test-project" {
		t.Errorf("project = %v, want test-project", body["project"])
	}
	if body["env"] != "test" {
		t.Errorf("env = %v, want test", body["env"])
	}
	if _, ok := body["uptime"]; !ok {
		t.Error("health body missing uptime")
	}
}

func TestRequestIDGenerated(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("response missing generated request ID")
	}
}

func TestRequestIDHonored(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "fixed-id")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "fixed-id" {
		t.Errorf("request ID = %q, want the client-supplied one", got)
	}
}

func TestAddr(t *testing.T) {
	s := New(Options{Host: "0.0.0.0", Port: 9000}, zerolog.Nop())
	if got := s.Addr(); got != "0.0.0.0:9000" {
		t.Errorf("Addr = %q", got)
	}
}

func TestProbeFailsWithoutServer(t *testing.T) {
	// Port 1 is never listening in the test environment.
	if err := Probe("127.0.0.1", 1); err == nil {
		t.Error("Probe succeeded against a closed port")
	}
}
