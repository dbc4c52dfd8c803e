// Package services holds the read-side view pipeline for the directory:
// a pure filter/sort computation over an already-resolved clinic list,
// recomputed on every view-state change.
package services

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
)

// SortMode selects the ordering of the directory view.
type SortMode string

const (
	// SortByName orders by clinic name ascending.
	SortByName SortMode = "name"

	// SortByRating orders by Google rating descending, unrated clinics
	// last, name ascending within ties.
	SortByRating SortMode = "rating"
)

// ParseSortMode maps a request value onto a SortMode, defaulting to name.
func ParseSortMode(value string) SortMode {
	if SortMode(strings.ToLower(strings.TrimSpace(value))) == SortByRating {
		return SortByRating
	}
	return SortByName
}

// ViewParams is the user-controlled view state of the directory.
type ViewParams struct {
	SearchTerm    string
	EmergencyOnly bool
	SortBy        SortMode
}

// Search terms often arrive with a trailing region qualifier ("Middleton,
// WI", "Madison Wisconsin"). The qualifier is noise for a single-county
// directory and is stripped before matching.
var regionQualifier = regexp.MustCompile(`(?i),?\s*\b(?:wisconsin|wi)\s*$`)

// ApplyView derives the view-ready ordered list from the resolved clinics
// and the current view state. Pure and reentrant: the input list and its
// elements are never mutated, and a new slice is returned each call.
func ApplyView(clinics []entities.Clinic, params ViewParams) []entities.Clinic {
	out := make([]entities.Clinic, 0, len(clinics))
	term := normalizeSearchTerm(params.SearchTerm)

	for _, clinic := range clinics {
		if params.EmergencyOnly && !offersEmergencyCare(clinic) {
			continue
		}
		if term != "" && !matchesTerm(clinic, term) {
			continue
		}
		out = append(out, clinic)
	}

	sortView(out, params.SortBy)
	return out
}

// normalizeSearchTerm case-folds the term and strips a trailing region
// qualifier. A term that was nothing but the qualifier normalizes to empty,
// which disables the text filter.
func normalizeSearchTerm(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return ""
	}
	term = regionQualifier.ReplaceAllString(term, "")
	return strings.TrimSpace(term)
}

// matchesTerm reports whether the normalized term appears in the clinic's
// name, address, city, or any category. Missing fields simply do not match.
func matchesTerm(clinic entities.Clinic, term string) bool {
	if strings.Contains(strings.ToLower(clinic.Name), term) ||
		strings.Contains(strings.ToLower(clinic.Address), term) ||
		strings.Contains(strings.ToLower(clinic.City), term) {
		return true
	}
	for _, category := range clinic.Categories {
		if strings.Contains(strings.ToLower(category), term) {
			return true
		}
	}
	return false
}

// offersEmergencyCare reports whether any category suggests urgent or
// emergency service. Substring containment tolerates label variants like
// "Emergency Services" and "24 Hour Care".
func offersEmergencyCare(clinic entities.Clinic) bool {
	for _, category := range clinic.Categories {
		folded := strings.ToLower(category)
		if strings.Contains(folded, "urgent") || strings.Contains(folded, "emergency") {
			return true
		}
		if strings.Contains(folded, "24") && strings.Contains(folded, "hour") {
			return true
		}
	}
	return false
}

func sortView(clinics []entities.Clinic, mode SortMode) {
	collator := collate.New(language.English, collate.IgnoreCase)

	switch mode {
	case SortByRating:
		sort.SliceStable(clinics, func(i, j int) bool {
			ri, rj := ratingOf(clinics[i]), ratingOf(clinics[j])
			if ri != rj {
				return ri > rj
			}
			return collator.CompareString(clinics[i].Name, clinics[j].Name) < 0
		})
	default:
		sort.SliceStable(clinics, func(i, j int) bool {
			return collator.CompareString(clinics[i].Name, clinics[j].Name) < 0
		})
	}
}

// ratingOf treats unrated clinics as -1 so they sort after every real
// rating.
func ratingOf(clinic entities.Clinic) float64 {
	if clinic.GoogleRating == nil {
		return -1
	}
	return *clinic.GoogleRating
}
