package compcache

import "time"

// Default TTL horizons for cached comparable-sales payloads.
//
// The two horizons are intentionally distinct: StorageTTL bounds how long a
// row is retained in the backing store, FreshnessTTL bounds how long the
// payload is considered valid for reuse. Freshness is the authoritative
// check on read; because the default storage horizon is the shorter of the
// two, an entry can be evicted while still notionally fresh and the next
// read is an ordinary miss.
const (
	DefaultFreshnessTTL = 24 * time.Hour
	DefaultStorageTTL   = 6 * time.Hour

	// DefaultMaxPayloadBytes is the serialized-size ceiling above which a
	// comp list is truncated before storing.
	DefaultMaxPayloadBytes = 50 * 1024

	// DefaultMaxCompsStored is how many comps survive truncation.
	DefaultMaxCompsStored = 10
)
