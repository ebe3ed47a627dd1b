package enrichment

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/wandertrip/travel-roulette/internal/types"
)

// DefaultTTL is how long a stored enrichment stays visible to lookups.
const DefaultTTL = 30 * time.Minute

// Key builds the composite cache key for a guide triple. Logically equal
// triples always produce the same key.
func Key(city string, month, duration int) string {
	return fmt.Sprintf("%s_%d_%d", city, month, duration)
}

// Store holds enrichment results keyed by Key. Get returns false both for
// keys never written and for entries older than the TTL; entries are never
// evicted proactively, staleness is judged at read time.
type Store interface {
	Get(key string) (types.EnrichmentResult, bool)
	Set(key string, value types.EnrichmentResult)
}

var _ Store = (*TTLStore)(nil)

type storedEntry struct {
	value    types.EnrichmentResult
	storedAt time.Time
}

// TTLStore keeps entries in a go-cache map guarded for concurrent access.
// Entries are written without go-cache's own expiration; the store compares
// the stored timestamp against its clock on every read, so tests can inject a
// fake clock instead of sleeping.
type TTLStore struct {
	ttl     time.Duration
	now     func() time.Time
	entries *cache.Cache
}

func NewTTLStore(ttl time.Duration) *TTLStore {
	return NewTTLStoreWithClock(ttl, time.Now)
}

func NewTTLStoreWithClock(ttl time.Duration, now func() time.Time) *TTLStore {
	return &TTLStore{
		ttl:     ttl,
		now:     now,
		entries: cache.New(cache.NoExpiration, 0),
	}
}

func (s *TTLStore) Get(key string) (types.EnrichmentResult, bool) {
	v, found := s.entries.Get(key)
	if !found {
		return types.EnrichmentResult{}, false
	}
	e := v.(storedEntry)
	if s.now().Sub(e.storedAt) >= s.ttl {
		return types.EnrichmentResult{}, false
	}
	return e.value, true
}

// Set stores the value with the current timestamp. A second write to the same
// key replaces the first: last write wins.
func (s *TTLStore) Set(key string, value types.EnrichmentResult) {
	s.entries.Set(key, storedEntry{value: value, storedAt: s.now()}, cache.NoExpiration)
}
