// Package gemini provides the persona-generation client for Google's
// Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash-lite"

// Client calls the Gemini API to generate persona text.
type Client struct {
	apiKey string
	model  string
}

// NewClient creates a Gemini client for the given API key and model.
func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
	}
}

// Complete sends the prompt and returns the generated persona text. The
// response is free-form markdown, not JSON: the persona's structure is
// enforced by the prompt contract and parsed by the caller. Each call is
// single-shot; endpoint failures surface as errors with whatever status
// detail the SDK provides.
func (c *Client) Complete(ctx context.Context, prompt string, cache CacheInterface, logger Logger) (string, error) {
	modelName := c.model
	if modelName == "" {
		modelName = DefaultModel
	}
	modelName = strings.TrimPrefix(modelName, "models/")

	cacheKey := fmt.Sprintf("genai:%s:%s", modelName, prompt)
	if cache != nil {
		if cached, found := cache.APICall(cacheKey, []byte(prompt)); found && len(cached) > 0 {
			logger.Debug("gemini cache hit", "response_length", len(cached))
			return string(cached), nil
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  c.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("creating genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	maxTokens := int32(2048)
	temperature := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: maxTokens,
	}

	logger.Debug("calling gemini", "model", modelName, "prompt_length", len(prompt))

	resp, err := client.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	logger.Debug("gemini response received", "response_length", len(text))

	if cache != nil {
		if err := cache.SetAPICall(cacheKey, []byte(prompt), []byte(text)); err != nil {
			logger.Debug("failed to cache gemini response", "error", err)
		}
	}

	return text, nil
}

// responseText pulls the generated text out of the response envelope.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini API")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in Gemini response")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		b.WriteString(part.Text)
	}
	text := b.String()
	if text == "" {
		return "", fmt.Errorf("empty text in Gemini response")
	}
	return text, nil
}
