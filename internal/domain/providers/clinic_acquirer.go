package providers

import (
	"context"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
)

// ClinicAcquirer is the generative/search-backed upstream used in the
// self-contained deployment mode. It produces the raw clinic list and fills
// gaps left by the initial generation.
type ClinicAcquirer interface {
	// GenerateClinics asks the upstream for the full clinic list. The
	// response is a JSON array of canonical-shaped records; the provider may
	// wrap it in prose or code fences, which the client strips.
	GenerateClinics(ctx context.Context) ([]entities.Clinic, error)

	// FindWebsite looks up the official website for one clinic. An empty
	// string with nil error means no site was found.
	FindWebsite(ctx context.Context, name, address string) (string, error)
}
