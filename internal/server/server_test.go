package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testhelpers "github.com/akladas/propscope/internal/testing"
)

func newTestServer(t *testing.T) (*Server, func()) {
	t.Helper()
	db, cleanup := testhelpers.NewCacheDB(t)
	s := New(Config{
		Log:     zerolog.Nop(),
		CacheDB: db,
		Port:    0,
	})
	return s, cleanup
}

func TestHealthEndpoint(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSystemHealthEndpoint(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SystemHealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "ok", resp.CacheDB)
}

func TestDatabaseStatsEndpoint(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/system/database/stats", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Greater(t, resp["page_size"], int64(0))
}

func TestFinanceRoutesRegistered(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	body := `{"cash_flows":[-1000,1100]}`
	req := httptest.NewRequest(http.MethodPost, "/api/finance/irr", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompsRoutesAbsentWithoutResolver(t *testing.T) {
	s, cleanup := newTestServer(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/comps/providers", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
