package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient implements Completer through Google's official SDK. It is
// the fallback completion backend when no OpenRouter key is configured.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient initializes a Gemini client for the given model.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	// Match the generation parameters of the OpenRouter backend so the
	// loop behaves the same regardless of which service answers.
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(800)

	return &GeminiClient{client: client, model: model}, nil
}

// Close releases the underlying SDK resources.
func (c *GeminiClient) Close() {
	c.client.Close()
}

// Complete sends one generation request and returns the reply text.
// The SDK has no separate system role for this call path, so the system
// prompt is prepended to the user query.
func (c *GeminiClient) Complete(ctx context.Context, query, priorContext string, attempt int) (string, error) {
	full := systemPrompt(attempt, priorContext) + "\n\nUser: " + query

	resp, err := c.model.GenerateContent(ctx, genai.Text(full))
	if err != nil {
		return "", fmt.Errorf("gemini: %w: generate content: %v", ErrService, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: %w: empty candidates", ErrService)
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		parts = append(parts, string(txt))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("gemini: %w: empty text parts", ErrService)
	}

	return strings.Join(parts, "\n"), nil
}
