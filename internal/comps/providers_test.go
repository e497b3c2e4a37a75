package comps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBridgeBundle(t *testing.T) {
	bundle := json.RawMessage(`[
		{
			"UnparsedAddress": "456 Oak Ave, Austin, TX 78701",
			"ClosePrice": 312000,
			"LivingArea": 1650,
			"BedroomsTotal": 3,
			"BathroomsTotalDecimal": 2,
			"PropertySubType": "SingleFamilyResidence",
			"CloseDate": "2026-05-14",
			"Latitude": 30.27,
			"Longitude": -97.74
		},
		{"UnparsedAddress": "bad row only", "ClosePrice": 0}
	]`)

	records := parseBridgeBundle(bundle, zerolog.Nop())
	require.Len(t, records, 2) // Price filtering happens at the resolver

	assert.Equal(t, "456 Oak Ave, Austin, TX 78701", records[0].Address)
	assert.Equal(t, 312000.0, records[0].Price)
	assert.Equal(t, 3, records[0].Beds)
	require.NotNil(t, records[0].SaleDate)
	assert.Equal(t, 2026, records[0].SaleDate.Year())
	require.NotNil(t, records[0].Latitude)
	assert.InDelta(t, 30.27, *records[0].Latitude, 1e-9)
}

func TestParseBridgeBundleMalformed(t *testing.T) {
	assert.Nil(t, parseBridgeBundle(json.RawMessage(`{"not":"an array"}`), zerolog.Nop()))
	assert.Nil(t, parseBridgeBundle(json.RawMessage(`garbage`), zerolog.Nop()))
}

func TestParseModelComps(t *testing.T) {
	content := "Here are the comps:\n```json\n" +
		`[{"address":"789 Pine Rd","price":295000,"sqft":1500,"beds":3,"baths":2,"propertyType":"SingleFamily","saleDate":"2026-06-02"}]` +
		"\n```"

	records := parseModelComps(content, zerolog.Nop())
	require.Len(t, records, 1)
	assert.Equal(t, "789 Pine Rd", records[0].Address)
	assert.Equal(t, 295000.0, records[0].Price)
	require.NotNil(t, records[0].SaleDate)
}

func TestParseModelCompsMalformed(t *testing.T) {
	assert.Nil(t, parseModelComps("sorry, I cannot help with that", zerolog.Nop()))
	assert.Nil(t, parseModelComps(`{"an":"object"}`, zerolog.Nop()))
	assert.Nil(t, parseModelComps("", zerolog.Nop()))
}

func TestBridgeClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Closed", r.URL.Query().Get("StandardStatus"))
		assert.Equal(t, "78701", r.URL.Query().Get("PostalCode"))
		_, _ = w.Write([]byte(`{"success":true,"bundle":[{"UnparsedAddress":"456 Oak Ave","ClosePrice":312000}]}`))
	}))
	defer server.Close()

	client, err := NewBridgeClient(server.URL, "test-key", 5*time.Second, zerolog.Nop())
	require.NoError(t, err)

	records, err := client.FetchComps(context.Background(), testQuery())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 312000.0, records[0].Price)
}

func TestBridgeClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewBridgeClient(server.URL, "test-key", 5*time.Second, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.FetchComps(context.Background(), testQuery())
	assert.Error(t, err) // Retryable failure, surfaced to the retry wrapper
}

func TestBridgeClientMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client, err := NewBridgeClient(server.URL, "test-key", 5*time.Second, zerolog.Nop())
	require.NoError(t, err)

	records, err := client.FetchComps(context.Background(), testQuery())
	require.NoError(t, err) // Malformed body is zero results, not a failure
	assert.Empty(t, records)
}

func TestOpenAIClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{
					"content": `[{"address":"789 Pine Rd","price":295000}]`,
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewOpenAIClient(server.URL, "test-key", 5*time.Second, zerolog.Nop())
	require.NoError(t, err)

	records, err := client.FetchComps(context.Background(), testQuery())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "789 Pine Rd", records[0].Address)
}

func TestGeminiClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "key=test-key")
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{
						{"text": `[{"address":"789 Pine Rd","price":295000}]`},
					},
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewGeminiClient(server.URL, "test-key", 5*time.Second, zerolog.Nop())
	require.NoError(t, err)

	records, err := client.FetchComps(context.Background(), testQuery())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 295000.0, records[0].Price)
}

func TestClientsRequireAPIKey(t *testing.T) {
	_, err := NewBridgeClient("http://x", "", time.Second, zerolog.Nop())
	assert.Error(t, err)
	_, err = NewOpenAIClient("http://x", "", time.Second, zerolog.Nop())
	assert.Error(t, err)
	_, err = NewGeminiClient("http://x", "", time.Second, zerolog.Nop())
	assert.Error(t, err)
}
