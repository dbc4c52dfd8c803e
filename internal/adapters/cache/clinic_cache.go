package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/providers"
)

// clinicCacheKey is the fixed identifier of the single clinic-list slot.
const clinicCacheKey = "vetlyst:clinics:v1"

// ClinicCache is the time-boxed cache of the resolved clinic list. Entries
// carry their own fetch timestamp so a stale entry stays readable as a
// last-resort fallback after its TTL has lapsed; the backend entry is
// therefore written without backend-side expiration.
type ClinicCache struct {
	provider providers.CacheProvider
	ttl      time.Duration
}

// NewClinicCache creates a clinic cache over the given storage backend.
func NewClinicCache(provider providers.CacheProvider, ttl time.Duration) *ClinicCache {
	return &ClinicCache{
		provider: provider,
		ttl:      ttl,
	}
}

// Read returns the persisted entry if one exists. Storage errors and
// malformed payloads are treated as absent, never raised.
func (c *ClinicCache) Read(ctx context.Context) (entities.CacheEntry, bool) {
	data, err := c.provider.Get(ctx, clinicCacheKey)
	if err != nil {
		return entities.CacheEntry{}, false
	}

	var entry entities.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Warn().Err(err).Msg("discarding malformed clinic cache entry")
		return entities.CacheEntry{}, false
	}
	return entry, true
}

// Fresh reports whether the entry is still inside its TTL at the given time.
func (c *ClinicCache) Fresh(entry entities.CacheEntry, now time.Time) bool {
	age := now.UnixMilli() - entry.FetchedAtMs
	return age < c.ttl.Milliseconds()
}

// Write persists the clinic list, overwriting any prior entry. A persist
// failure is logged and swallowed: the caller's freshly fetched data must
// still reach the caller even when caching fails.
func (c *ClinicCache) Write(ctx context.Context, clinics []entities.Clinic, now time.Time) {
	entry := entities.CacheEntry{
		Payload:     clinics,
		FetchedAtMs: now.UnixMilli(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode clinic cache entry")
		return
	}

	if err := c.provider.Set(ctx, clinicCacheKey, data, 0); err != nil {
		log.Warn().Err(err).Msg("failed to persist clinic cache entry")
	}
}
