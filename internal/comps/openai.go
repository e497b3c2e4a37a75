package comps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// OpenAIClient asks an OpenAI model for recent comparable sales and parses
// the JSON array it returns in the completion text.
type OpenAIClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	log     zerolog.Logger
}

// NewOpenAIClient creates an OpenAI provider client.
func NewOpenAIClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key not configured")
	}
	return &OpenAIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   "gpt-4o-mini",
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "openai").Logger(),
	}, nil
}

// Name returns the provider tag callers use to select this client.
func (c *OpenAIClient) Name() string { return "openai" }

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// rawComp is the comp shape requested from language-model providers.
type rawComp struct {
	Address      string   `json:"address"`
	Price        float64  `json:"price"`
	Sqft         float64  `json:"sqft"`
	Beds         int      `json:"beds"`
	Baths        float64  `json:"baths"`
	PropertyType string   `json:"propertyType"`
	SaleDate     string   `json:"saleDate"`
	Condition    string   `json:"condition"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

func compPrompt(query Query) string {
	return fmt.Sprintf(
		"List recent comparable home sales near %s, %s, %s %s as a JSON array. "+
			"Each element: {address, price, sqft, beds, baths, propertyType, saleDate, condition, latitude, longitude}. "+
			"Respond with the JSON array only.",
		query.Address, query.City, query.State, query.Zip,
	)
}

// FetchComps requests comps via a chat completion.
func (c *OpenAIClient) FetchComps(ctx context.Context, query Query) ([]Record, error) {
	body := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": compPrompt(query)},
		},
		"temperature": 0.2,
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai returned status %d", resp.StatusCode)
	}

	var payload openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Warn().Err(err).Msg("Malformed openai response, treating as zero results")
		return nil, nil
	}
	if len(payload.Choices) == 0 {
		return nil, nil
	}

	return parseModelComps(payload.Choices[0].Message.Content, c.log), nil
}

// parseModelComps extracts a JSON comp array from model output text.
// Tolerates code fences and surrounding prose; anything unparseable is
// zero results.
func parseModelComps(content string, log zerolog.Logger) []Record {
	text := strings.TrimSpace(content)
	if i := strings.Index(text, "["); i >= 0 {
		if j := strings.LastIndex(text, "]"); j > i {
			text = text[i : j+1]
		}
	}

	var raw []rawComp
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		log.Warn().Err(err).Msg("Model output is not a comp array, treating as zero results")
		return nil
	}

	records := make([]Record, 0, len(raw))
	for _, rc := range raw {
		rec := Record{
			Address:      rc.Address,
			Price:        rc.Price,
			Sqft:         rc.Sqft,
			Beds:         rc.Beds,
			Baths:        rc.Baths,
			PropertyType: rc.PropertyType,
			Condition:    rc.Condition,
			Latitude:     rc.Latitude,
			Longitude:    rc.Longitude,
		}
		if rc.SaleDate != "" {
			if ts, err := time.Parse("2006-01-02", rc.SaleDate); err == nil {
				rec.SaleDate = &ts
			}
		}
		records = append(records, rec)
	}
	return records
}
