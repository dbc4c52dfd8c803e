// Package normalize converts heterogeneous raw clinic records into the
// canonical Clinic entity. Source tables have accumulated several column
// naming conventions (snake_case, camelCase, human-readable headers), so
// every canonical field is resolved by probing an ordered list of candidate
// keys and taking the first defined value.
package normalize

import (
	"strings"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
)

// Defaults applied when no candidate key yields a value.
const (
	DefaultAddress  = "Address not available"
	DefaultCity     = "Dane County"
	DefaultPhone    = "Phone not available"
	DefaultCategory = "General Practice"
)

// Candidate key lists, probed in order. Earlier entries are the current
// convention; later ones are legacy spellings still present in old rows.
var (
	nameKeys      = []string{"name", "clinic_name", "Clinic Name"}
	addressKeys   = []string{"full_address", "address", "Address"}
	cityKeys      = []string{"city", "City"}
	phoneKeys     = []string{"phone", "phone_number", "Phone"}
	photoKeys     = []string{"photo_url", "photoUrl", "Photo"}
	hoursKeys     = []string{"hours", "Hours"}
	websiteKeys   = []string{"website_url", "websiteUrl", "website", "Website"}
	ratingKeys    = []string{"google_rating", "googleRating", "rating"}
	reviewKeys    = []string{"google_review_count", "googleReviewCount", "review_count"}
	mapsKeys      = []string{"google_maps_url", "googleMapsUrl"}
	categoryKeys  = []string{"categories", "Categories"}
	emergencyKeys = []string{"emergency_status", "emergencyStatus", "Emergency Status"}
)

// Record converts one raw record into a canonical Clinic. The second return
// value is false when the record must be discarded (no usable name). The
// function is pure: it never mutates its input and has no side effects.
func Record(raw map[string]interface{}) (entities.Clinic, bool) {
	name := strings.TrimSpace(firstString(raw, nameKeys...))
	if name == "" {
		return entities.Clinic{}, false
	}

	clinic := entities.Clinic{
		Name:          name,
		Address:       stringOrDefault(raw, addressKeys, DefaultAddress),
		City:          stringOrDefault(raw, cityKeys, DefaultCity),
		Phone:         stringOrDefault(raw, phoneKeys, DefaultPhone),
		PhotoURL:      strings.TrimSpace(firstString(raw, photoKeys...)),
		Hours:         strings.TrimSpace(firstString(raw, hoursKeys...)),
		WebsiteURL:    strings.TrimSpace(firstString(raw, websiteKeys...)),
		GoogleMapsURL: strings.TrimSpace(firstString(raw, mapsKeys...)),
	}

	if rating, ok := firstFloat(raw, ratingKeys...); ok {
		clinic.GoogleRating = &rating
	}
	if count, ok := firstInt(raw, reviewKeys...); ok {
		clinic.GoogleReviewCount = &count
	}

	clinic.Categories = MergeCategories(
		firstValue(raw, categoryKeys...),
		firstString(raw, emergencyKeys...),
	)

	return clinic, true
}

// Clinic re-normalizes an already-shaped clinic, enforcing the entity
// invariants (trimmed name, non-empty deduplicated categories). Used for
// snapshot records, which are canonical in shape but not trusted to satisfy
// the invariants. Idempotent: normalizing a normalized clinic is a no-op.
func Clinic(c entities.Clinic) (entities.Clinic, bool) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return entities.Clinic{}, false
	}
	if strings.TrimSpace(c.Address) == "" {
		c.Address = DefaultAddress
	}
	if strings.TrimSpace(c.City) == "" {
		c.City = DefaultCity
	}
	if strings.TrimSpace(c.Phone) == "" {
		c.Phone = DefaultPhone
	}
	c.Categories = MergeCategories(c.Categories, "")
	return c, true
}

// MergeCategories builds the canonical category list from a raw categories
// value and an optional emergency-status label. The emergency status, when
// present, is inserted first; source categories follow in order with
// exact-string duplicates suppressed. An empty result becomes the default
// single-category list.
func MergeCategories(raw interface{}, emergencyStatus string) []string {
	merged := make([]string, 0, 4)
	seen := make(map[string]struct{})

	add := func(label string) {
		label = strings.TrimSpace(label)
		if label == "" {
			return
		}
		if _, dup := seen[label]; dup {
			return
		}
		seen[label] = struct{}{}
		merged = append(merged, label)
	}

	add(emergencyStatus)
	for _, label := range categoryStrings(raw) {
		add(label)
	}

	if len(merged) == 0 {
		merged = append(merged, DefaultCategory)
	}
	return merged
}

// categoryStrings coerces the raw categories value into a string slice.
// Accepted shapes: a string array, a Postgres-style brace-delimited string
// like `{Emergency,"Urgent Care"}`, or a plain comma-separated string.
func categoryStrings(raw interface{}) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return splitCategoryString(v)
	case []byte:
		return splitCategoryString(string(v))
	default:
		return nil
	}
}

func splitCategoryString(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	braced := strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
	if braced {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if braced {
			part = strings.Trim(part, `"`)
			part = strings.TrimSpace(part)
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// firstValue returns the first defined, non-nil value among the candidate
// keys. This is the shape-probing combinator the field extractors share.
func firstValue(raw map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				return s
			}
		case []byte:
			if strings.TrimSpace(string(s)) != "" {
				return string(s)
			}
		}
	}
	return ""
}

func firstFloat(raw map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		}
	}
	return 0, false
}

func firstInt(raw map[string]interface{}, keys ...string) (int, bool) {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
	}
	return 0, false
}

func stringOrDefault(raw map[string]interface{}, keys []string, fallback string) string {
	if s := strings.TrimSpace(firstString(raw, keys...)); s != "" {
		return s
	}
	return fallback
}
