package comps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// GeminiClient asks a Gemini model for recent comparable sales and parses
// the JSON array from the candidate text.
type GeminiClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	log     zerolog.Logger
}

// NewGeminiClient creates a Gemini provider client.
func NewGeminiClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}
	return &GeminiClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   "gemini-1.5-flash",
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "gemini").Logger(),
	}, nil
}

// Name returns the provider tag callers use to select this client.
func (c *GeminiClient) Name() string { return "gemini" }

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// FetchComps requests comps via the generateContent endpoint.
func (c *GeminiClient) FetchComps(ctx context.Context, query Query) ([]Record, error) {
	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": compPrompt(query)},
				},
			},
		},
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var payload geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Warn().Err(err).Msg("Malformed gemini response, treating as zero results")
		return nil, nil
	}
	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return nil, nil
	}

	return parseModelComps(payload.Candidates[0].Content.Parts[0].Text, c.log), nil
}
