package services

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
)

// ErrAllSourcesExhausted is returned when neither the live source nor any
// fallback could supply clinic data. It is the only resolution failure
// surfaced to callers; everything milder degrades to a provenance-tagged
// result.
var ErrAllSourcesExhausted = errors.New("no clinic data available from any source")

// ClinicResolver produces one resolved clinic set per invocation. Both
// deployment modes (database-backed and self-contained acquisition)
// implement it.
type ClinicResolver interface {
	Resolve(ctx context.Context) (*entities.ClinicSet, error)
}

// dedupeClinics drops later records whose dedup key was already seen.
// First-seen wins, so source priority order is preserved.
func dedupeClinics(clinics []entities.Clinic) []entities.Clinic {
	seen := make(map[string]struct{}, len(clinics))
	out := make([]entities.Clinic, 0, len(clinics))
	for _, clinic := range clinics {
		key := clinic.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, clinic)
	}
	return out
}

// sortClinicsByName orders clinics by name ascending with locale-aware
// collation. Collators are not safe for concurrent use, so each call builds
// its own.
func sortClinicsByName(clinics []entities.Clinic) {
	collator := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(clinics, func(i, j int) bool {
		return collator.CompareString(clinics[i].Name, clinics[j].Name) < 0
	})
}

// applyOverrides patches clinics with the manual correction set, matching
// on the canonical dedup key. Earlier versions of the data pipeline matched
// on name substrings; keying on the full dedup key is a deliberate
// tightening so an override can never hit an unrelated future entry.
func applyOverrides(clinics []entities.Clinic, overrides []entities.CurationOverride) {
	if len(overrides) == 0 {
		return
	}

	byKey := make(map[string]entities.CurationOverride, len(overrides))
	for _, o := range overrides {
		byKey[o.Key] = o
	}

	for i := range clinics {
		o, ok := byKey[clinics[i].DedupKey()]
		if !ok {
			continue
		}
		if o.Name != "" {
			clinics[i].Name = o.Name
		}
		if o.Address != "" {
			clinics[i].Address = o.Address
		}
		if o.City != "" {
			clinics[i].City = o.City
		}
		if o.Phone != "" {
			clinics[i].Phone = o.Phone
		}
		if len(o.Categories) > 0 {
			clinics[i].Categories = append([]string(nil), o.Categories...)
		}
		if o.WebsiteURL != "" {
			clinics[i].WebsiteURL = o.WebsiteURL
		}
		if o.Hours != "" {
			clinics[i].Hours = o.Hours
		}
	}
}
