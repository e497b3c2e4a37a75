// Package compcache provides persistent caching for comparable-sales lookups.
// Payloads are stored as JSON blobs keyed by normalized location, with
// separate storage and freshness horizons.
package compcache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options tunes cache behavior. Zero values fall back to the package defaults.
type Options struct {
	FreshnessTTL    time.Duration
	StorageTTL      time.Duration
	MaxPayloadBytes int
	MaxCompsStored  int
}

func (o Options) withDefaults() Options {
	if o.FreshnessTTL <= 0 {
		o.FreshnessTTL = DefaultFreshnessTTL
	}
	if o.StorageTTL <= 0 {
		o.StorageTTL = DefaultStorageTTL
	}
	if o.MaxPayloadBytes <= 0 {
		o.MaxPayloadBytes = DefaultMaxPayloadBytes
	}
	if o.MaxCompsStored <= 0 {
		o.MaxCompsStored = DefaultMaxCompsStored
	}
	return o
}

// Repository provides cache operations for comparable-sales payloads.
//
// Read and write failures are deliberately non-fatal: the cache is an
// optimization, never a correctness dependency, so errors degrade to misses.
type Repository struct {
	db   *sql.DB
	opts Options
	log  zerolog.Logger
	now  func() time.Time // Injectable clock for tests
}

// NewRepository creates a new comp cache repository.
func NewRepository(db *sql.DB, opts Options, log zerolog.Logger) *Repository {
	return &Repository{
		db:   db,
		opts: opts.withDefaults(),
		log:  log.With().Str("component", "compcache").Logger(),
		now:  time.Now,
	}
}

// Key builds the normalized cache key for a subject location:
// lowercase, trimmed parts joined with ":". Empty parts are kept so the key
// shape stays stable across partially-specified queries.
func Key(address, city, state, zip string) string {
	parts := []string{address, city, state, zip}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, ":")
}

// Get returns the cached payload for key, or nil on a miss.
// A hit requires the row to still be retained (storage horizon) AND the
// payload to be within the freshness horizon; stale entries are evicted
// lazily here. Any storage error is swallowed and reported as a miss.
func (r *Repository) Get(key string) json.RawMessage {
	now := r.now()

	var data string
	var createdAt int64
	err := r.db.QueryRow(
		"SELECT data, created_at FROM comp_cache WHERE location_key = ? AND expires_at > ?",
		key, now.Unix(),
	).Scan(&data, &createdAt)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Cache read failed, treating as miss")
		return nil
	}

	age := now.Sub(time.Unix(createdAt, 0))
	if age > r.opts.FreshnessTTL {
		// Stale payload: evict and miss
		if err := r.Invalidate(key); err != nil {
			r.log.Warn().Err(err).Str("key", key).Msg("Failed to evict stale cache entry")
		}
		return nil
	}

	return json.RawMessage(data)
}

// Put stores a payload under key with the configured storage TTL.
// Payloads whose serialized form exceeds the size ceiling are truncated: if
// the payload is a JSON array (the comp-list case), only the first
// MaxCompsStored elements are kept.
func (r *Repository) Put(key string, payload json.RawMessage, sourceKey string) error {
	if len(payload) > r.opts.MaxPayloadBytes {
		truncated, err := truncateArray(payload, r.opts.MaxCompsStored)
		if err != nil {
			return fmt.Errorf("payload exceeds %d bytes and could not be truncated: %w",
				r.opts.MaxPayloadBytes, err)
		}
		r.log.Debug().
			Str("key", key).
			Int("original_bytes", len(payload)).
			Int("stored_bytes", len(truncated)).
			Msg("Truncated oversized cache payload")
		payload = truncated
	}

	now := r.now()
	expiresAt := now.Add(r.opts.StorageTTL).Unix()

	_, err := r.db.Exec(
		"INSERT OR REPLACE INTO comp_cache (location_key, data, source_key, created_at, expires_at) VALUES (?, ?, ?, ?, ?)",
		key, string(payload), sourceKey, now.Unix(), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}

	return nil
}

// Invalidate removes a specific entry.
func (r *Repository) Invalidate(key string) error {
	if _, err := r.db.Exec("DELETE FROM comp_cache WHERE location_key = ?", key); err != nil {
		return fmt.Errorf("failed to invalidate cache entry: %w", err)
	}
	return nil
}

// DeleteExpired removes all rows past their storage horizon.
// Returns the number of rows deleted.
func (r *Repository) DeleteExpired() (int64, error) {
	result, err := r.db.Exec("DELETE FROM comp_cache WHERE expires_at < ?", r.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cache entries: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// truncateArray keeps the first n elements of a JSON array payload.
func truncateArray(payload json.RawMessage, n int) (json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("payload is not a JSON array: %w", err)
	}
	if len(items) > n {
		items = items[:n]
	}
	out, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return out, nil
}
