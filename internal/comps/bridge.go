package comps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// BridgeClient fetches closed listings from the Bridge Interactive MLS API.
type BridgeClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewBridgeClient creates a Bridge provider client.
// A missing API key is a configuration error, not a runtime degradation.
func NewBridgeClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) (*BridgeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("bridge API key not configured")
	}
	return &BridgeClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "bridge").Logger(),
	}, nil
}

// Name returns the provider tag callers use to select this client.
func (c *BridgeClient) Name() string { return "bridge" }

// bridgeResponse is the Bridge payload shape: a bundle of listing objects.
type bridgeResponse struct {
	Success bool            `json:"success"`
	Bundle  json.RawMessage `json:"bundle"`
}

type bridgeListing struct {
	UnparsedAddress      string   `json:"UnparsedAddress"`
	ClosePrice           float64  `json:"ClosePrice"`
	LivingArea           float64  `json:"LivingArea"`
	BedroomsTotal        int      `json:"BedroomsTotal"`
	BathroomsTotalDecimal float64 `json:"BathroomsTotalDecimal"`
	PropertySubType      string   `json:"PropertySubType"`
	CloseDate            string   `json:"CloseDate"`
	Latitude             *float64 `json:"Latitude"`
	Longitude            *float64 `json:"Longitude"`
}

// FetchComps queries Bridge for closed sales near the subject property.
func (c *BridgeClient) FetchComps(ctx context.Context, query Query) ([]Record, error) {
	params := url.Values{}
	params.Set("access_token", c.apiKey)
	params.Set("PostalCode", query.Zip)
	params.Set("StandardStatus", "Closed")
	params.Set("limit", "25")
	if query.PropertyType != "" {
		params.Set("PropertySubType", query.PropertyType)
	}

	reqURL := fmt.Sprintf("%s/OData/listings?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bridge returned status %d", resp.StatusCode)
	}

	var payload bridgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		// Malformed body is zero results, not a retryable failure
		c.log.Warn().Err(err).Msg("Malformed bridge response, treating as zero results")
		return nil, nil
	}

	return parseBridgeBundle(payload.Bundle, c.log), nil
}

// parseBridgeBundle maps the bundle array into normalized records.
// A non-array bundle yields zero results.
func parseBridgeBundle(bundle json.RawMessage, log zerolog.Logger) []Record {
	var listings []bridgeListing
	if err := json.Unmarshal(bundle, &listings); err != nil {
		log.Warn().Err(err).Msg("Bridge bundle is not an array, treating as zero results")
		return nil
	}

	records := make([]Record, 0, len(listings))
	for _, l := range listings {
		rec := Record{
			Address:      l.UnparsedAddress,
			Price:        l.ClosePrice,
			Sqft:         l.LivingArea,
			Beds:         l.BedroomsTotal,
			Baths:        l.BathroomsTotalDecimal,
			PropertyType: l.PropertySubType,
			Latitude:     l.Latitude,
			Longitude:    l.Longitude,
		}
		if l.CloseDate != "" {
			if ts, err := time.Parse("2006-01-02", l.CloseDate); err == nil {
				rec.SaleDate = &ts
			}
		}
		records = append(records, rec)
	}
	return records
}
