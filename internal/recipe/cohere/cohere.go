// Package cohere generates recipes with the Cohere chat API.
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const defaultAPIURL = "https://api.cohere.ai/v1/chat"

type request struct {
	Model   string `json:"model"`
	Message string `json:"message"`
}

type response struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type CohereGenerator struct {
	apiKey  string
	model   string
	client  *http.Client
	baseURL string
}

// NewCohereGenerator never fails: an empty apiKey yields a client whose calls
// are rejected by the API at generation time.
func NewCohereGenerator(apiKey, model string) *CohereGenerator {
	return &CohereGenerator{
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{},
		baseURL: defaultAPIURL,
	}
}

func (g *CohereGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(request{Model: g.model, Message: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call cohere: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close cohere response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		var apiErr errorResponse
		if json.Unmarshal(errBody, &apiErr) == nil && apiErr.Message != "" {
			return "", fmt.Errorf("cohere returned status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("cohere returned status %d: %s", resp.StatusCode, errBody)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return body.Text, nil
}
