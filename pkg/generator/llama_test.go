package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eightball-ai/eightball/pkg/models"
)

func TestInfer(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/completion" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req models.CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if req.NPredict != 20 {
			t.Errorf("expected n_predict 20, got %d", req.NPredict)
		}
		if req.RepeatPenalty != 1.5 {
			t.Errorf("expected repeat_penalty 1.5, got %v", req.RepeatPenalty)
		}
		if req.Stream {
			t.Error("streaming must not be requested")
		}
		json.NewEncoder(w).Encode(models.CompletionResponse{Content: " Signs point to yes.", Stop: true})
	}))
	defer upstream.Close()

	c, err := NewLlamaClient(upstream.URL)
	if err != nil {
		t.Fatal(err)
	}

	cfg := models.InferenceConfig{MaxTokens: 20, RepeatPenalty: 1.5, RepeatLastN: 20, Temperature: 0.25, TopK: 5, TopP: 0.25}
	text, err := c.Infer(context.Background(), "Will it rain?", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if text != " Signs point to yes." {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestNewLlamaClientRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "127.0.0.1:8081", "/just/a/path", "://bad"} {
		if _, err := NewLlamaClient(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
	if _, err := NewLlamaClient("http://127.0.0.1:8081"); err != nil {
		t.Errorf("expected absolute http URL to be accepted: %v", err)
	}
}

func TestInferUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	c, err := NewLlamaClient(upstream.URL)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Infer(context.Background(), "Will it rain?", models.InferenceConfig{}); err == nil {
		t.Error("expected error for 500 upstream")
	}
}

func TestInferBadJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer upstream.Close()

	c, err := NewLlamaClient(upstream.URL)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Infer(context.Background(), "Will it rain?", models.InferenceConfig{}); err == nil {
		t.Error("expected error for undecodable response")
	}
}
