package langfuse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Flush_SendsBatch(t *testing.T) {
	t.Parallel()

	var received struct {
		Batch []struct {
			Type string `json:"type"`
			Body struct {
				Name     string            `json:"name"`
				Input    any               `json:"input"`
				Output   any               `json:"output"`
				Metadata map[string]string `json:"metadata"`
			} `json:"body"`
		} `json:"batch"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "pk-test" || pass != "sk-test" {
			t.Errorf("expected basic auth pk-test/sk-test, got %s/%s", user, pass)
		}
		if r.URL.Path != "/api/public/ingestion" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusMultiStatus)
	}))
	defer server.Close()

	cfg := Config{PublicKey: "pk-test", SecretKey: "sk-test", Host: server.URL}
	c := NewClient(cfg, server.Client())

	c.Record("macro_impact_analysis", "円安が進行", map[string]string{"is_shift": "右"}, nil)
	c.Flush(context.Background())

	if len(received.Batch) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received.Batch))
	}
	ev := received.Batch[0]
	if ev.Type != "trace-create" {
		t.Errorf("expected type trace-create, got %s", ev.Type)
	}
	if ev.Body.Name != "macro_impact_analysis" {
		t.Errorf("expected name macro_impact_analysis, got %s", ev.Body.Name)
	}
	if ev.Body.Input != "円安が進行" {
		t.Errorf("unexpected input %v", ev.Body.Input)
	}
}

func TestClient_Record_ErrorMetadata(t *testing.T) {
	t.Parallel()

	var gotMeta map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Batch []struct {
				Body struct {
					Metadata map[string]string `json:"metadata"`
				} `json:"body"`
			} `json:"batch"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if len(payload.Batch) == 1 {
			gotMeta = payload.Batch[0].Body.Metadata
		}
		w.WriteHeader(http.StatusMultiStatus)
	}))
	defer server.Close()

	cfg := Config{PublicKey: "pk-test", SecretKey: "sk-test", Host: server.URL}
	c := NewClient(cfg, server.Client())

	c.Record("macro_impact_analysis", "text", nil, context.DeadlineExceeded)
	c.Flush(context.Background())

	if gotMeta["error"] == "" {
		t.Error("expected error metadata to be recorded")
	}
}

func TestClient_Flush_EmptyBufferSendsNothing(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := Config{PublicKey: "pk-test", SecretKey: "sk-test", Host: server.URL}
	c := NewClient(cfg, server.Client())

	c.Flush(context.Background())

	if called {
		t.Error("expected no request for empty buffer")
	}
}

func TestClient_Flush_ClearsBufferOnFailure(t *testing.T) {
	t.Parallel()

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := Config{PublicKey: "pk-test", SecretKey: "sk-test", Host: server.URL}
	c := NewClient(cfg, server.Client())

	c.Record("macro_impact_analysis", "text", nil, nil)
	c.Flush(context.Background())
	// 失敗してもバッファは破棄され、再送はされない
	c.Flush(context.Background())

	if requests != 1 {
		t.Errorf("expected exactly 1 request, got %d", requests)
	}
}

func TestClient_NilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var c *Client
	c.Record("macro_impact_analysis", "text", nil, nil)
	c.Flush(context.Background())
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Config
		expected bool
	}{
		{"both keys", Config{PublicKey: "pk", SecretKey: "sk"}, true},
		{"missing secret", Config{PublicKey: "pk"}, false},
		{"missing public", Config{SecretKey: "sk"}, false},
		{"no keys", Config{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.cfg.Enabled(); got != tt.expected {
				t.Errorf("Enabled() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := LoadConfig()

	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.Host == "" {
		t.Error("expected default host to be set")
	}
}
