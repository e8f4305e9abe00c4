package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/eightball-ai/eightball/pkg/models"
)

const defaultInferTimeout = 60 * time.Second

// LlamaClient calls a llama.cpp-server compatible /completion endpoint.
type LlamaClient struct {
	baseURL string
	client  *http.Client
}

// NewLlamaClient validates the endpoint URL and returns a client.
func NewLlamaClient(baseURL string) (*LlamaClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid generator URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("generator URL %q must be absolute", baseURL)
	}
	return &LlamaClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultInferTimeout},
	}, nil
}

// Infer posts the prompt to /completion and returns the generated text.
func (c *LlamaClient) Infer(ctx context.Context, prompt string, cfg models.InferenceConfig) (string, error) {
	body, err := json.Marshal(models.CompletionRequest{
		Prompt:        prompt,
		NPredict:      cfg.MaxTokens,
		RepeatPenalty: cfg.RepeatPenalty,
		RepeatLastN:   cfg.RepeatLastN,
		Temperature:   cfg.Temperature,
		TopK:          cfg.TopK,
		TopP:          cfg.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/completion", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion endpoint returned %d", resp.StatusCode)
	}

	var out models.CompletionResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}

	return out.Content, nil
}
