package comps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/akladas/propscope/internal/compcache"
	"github.com/akladas/propscope/internal/utils"
)

// Resolver fetches comparable sales from a caller-selected provider, with
// cache-first reads and retry/backoff on provider calls. Total provider
// failure degrades to an empty comp list plus a notice; it never aborts the
// surrounding analysis.
type Resolver struct {
	providers map[string]Provider
	cache     *compcache.Repository
	retry     RetryPolicy
	log       zerolog.Logger
}

// NewResolver creates a resolver over the given providers.
// cache may be nil, which disables caching entirely.
func NewResolver(providers []Provider, cache *compcache.Repository, retry RetryPolicy, log zerolog.Logger) *Resolver {
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &Resolver{
		providers: byName,
		cache:     cache,
		retry:     retry.withDefaults(),
		log:       log.With().Str("component", "comp_resolver").Logger(),
	}
}

// Providers returns the tags of all configured providers.
func (r *Resolver) Providers() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Resolve fetches comps for the query from the named provider.
// The returned error is reserved for caller mistakes (unknown or
// unconfigured provider tag); resolution failures are reported through
// Result.Notice with an empty comp list.
func (r *Resolver) Resolve(ctx context.Context, query Query, providerName string, forceRefresh bool) (Result, error) {
	provider, ok := r.providers[providerName]
	if !ok {
		return Result{}, fmt.Errorf("unknown or unconfigured comp provider: %s", providerName)
	}

	key := compcache.Key(query.Address, query.City, query.State, query.Zip)

	if !forceRefresh && r.cache != nil {
		if payload := r.cache.Get(key); payload != nil {
			var cached []Record
			if err := json.Unmarshal(payload, &cached); err == nil {
				r.log.Debug().Str("key", key).Int("comps", len(cached)).Msg("Comp cache hit")
				return Result{Comps: cached, Source: providerName, FromCache: true}, nil
			}
			// Corrupt payload: drop it and fall through to a live fetch
			if err := r.cache.Invalidate(key); err != nil {
				r.log.Warn().Err(err).Str("key", key).Msg("Failed to drop corrupt cache entry")
			}
		}
	}

	timer := utils.NewTimer("comp_fetch_"+providerName, r.log)
	var records []Record
	err := withRetry(ctx, r.retry, r.log.With().Str("provider", providerName).Logger(), func() error {
		fetched, fetchErr := provider.FetchComps(ctx, query)
		if fetchErr != nil {
			return fetchErr
		}
		records = fetched
		return nil
	})
	timer.Stop()
	if err != nil {
		r.log.Warn().
			Err(err).
			Str("provider", providerName).
			Msg("Comp resolution failed after retries, degrading to empty list")
		return Result{
			Comps:  []Record{},
			Source: providerName,
			Notice: "Comparable sales lookup failed; analysis continues with a purchase-price-based value estimate.",
		}, nil
	}

	records = normalize(records)

	if r.cache != nil && len(records) > 0 {
		payload, marshalErr := json.Marshal(records)
		if marshalErr == nil {
			if putErr := r.cache.Put(key, payload, providerName); putErr != nil {
				r.log.Warn().Err(putErr).Str("key", key).Msg("Failed to cache comps")
			}
		}
	}

	r.log.Info().
		Str("provider", providerName).
		Int("comps", len(records)).
		Msg("Resolved comps")

	return Result{Comps: records, Source: providerName}, nil
}
