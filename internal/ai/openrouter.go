package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// Client identification headers sent with every completion request.
const (
	refererHeader = "https://github.com/cloud-dark/cilok"
	titleHeader   = "Cilok Location Toolkit"
)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenRouterClient talks to the OpenRouter chat-completions endpoint.
type OpenRouterClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenRouterClient creates a client for the given key and model.
// The 60s timeout bounds a stalled upstream; context cancellation is
// still honoured via NewRequestWithContext.
func NewOpenRouterClient(apiKey, model string) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    openRouterEndpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Complete sends one chat-completion request and returns the reply text.
func (c *OpenRouterClient) Complete(ctx context.Context, query, priorContext string, attempt int) (string, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(attempt, priorContext)},
			{Role: "user", Content: query},
		},
		Temperature: 0.7,
		MaxTokens:   800,
	})
	if err != nil {
		return "", fmt.Errorf("openrouter: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("openrouter: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", refererHeader)
	req.Header.Set("X-Title", titleHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openrouter: %w: do request: %v", ErrService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openrouter: %w: read response: %v", ErrService, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openrouter: %w: status %d: %s", ErrService, resp.StatusCode, body)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("openrouter: %w: unmarshal response: %v", ErrService, err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("openrouter: %w: api error: %s", ErrService, cr.Error.Message)
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openrouter: %w: empty choices (raw: %s)", ErrService, body)
	}
	return cr.Choices[0].Message.Content, nil
}
