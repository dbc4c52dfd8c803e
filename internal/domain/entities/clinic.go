package entities

import "strings"

// Clinic represents one veterinary clinic in the directory.
// The JSON shape matches the canonical snapshot format consumed by the
// frontend and produced by the acquisition pipeline.
type Clinic struct {
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	City              string   `json:"city"`
	Phone             string   `json:"phone"`
	Categories        []string `json:"categories"`
	PhotoURL          string   `json:"photoUrl,omitempty"`
	Hours             string   `json:"hours,omitempty"`
	WebsiteURL        string   `json:"websiteUrl,omitempty"`
	GoogleRating      *float64 `json:"googleRating,omitempty"`
	GoogleReviewCount *int     `json:"googleReviewCount,omitempty"`
	GoogleMapsURL     string   `json:"googleMapsUrl,omitempty"`
}

// DedupKey identifies a clinic across sources. Two records with the same
// case-insensitive, whitespace-trimmed name and address are the same clinic.
func (c *Clinic) DedupKey() string {
	return DedupKey(c.Name, c.Address)
}

// DedupKey builds the canonical identity key from a name/address pair.
func DedupKey(name, address string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(address))
}

// Source tags which upstream supplied a resolved clinic list.
type Source string

const (
	// SourcePrimary means the list came from the live primary source
	// (database table, or the acquisition API in self-contained mode).
	SourcePrimary Source = "primary"

	// SourceFallback means the list came from the static snapshot file.
	SourceFallback Source = "fallback"

	// SourceCache means the list came from the cache, fresh or stale.
	SourceCache Source = "cache"
)

// ClinicSet is the result of one resolution cycle: the deduplicated,
// name-sorted clinic list plus the provenance of the data. It is built once
// per cycle and not mutated afterwards.
type ClinicSet struct {
	Clinics []Clinic `json:"clinics"`
	Source  Source   `json:"source"`
}

// CacheEntry is the persisted cache record for a resolved clinic list.
type CacheEntry struct {
	Payload     []Clinic `json:"payload"`
	FetchedAtMs int64    `json:"fetchedAtEpochMs"`
}

// CurationOverride is a manual correction for one known clinic, applied
// after normalization and deduplication. Overrides are keyed by the
// canonical dedup key; only non-zero fields patch the matched clinic.
type CurationOverride struct {
	Key        string   `json:"key"`
	Name       string   `json:"name,omitempty"`
	Address    string   `json:"address,omitempty"`
	City       string   `json:"city,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Categories []string `json:"categories,omitempty"`
	WebsiteURL string   `json:"websiteUrl,omitempty"`
	Hours      string   `json:"hours,omitempty"`
}
