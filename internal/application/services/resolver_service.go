package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/repositories"
	"github.com/Vetlyst2025/Vetlyst102525/pkg/normalize"
)

// ResolverService resolves the clinic list in database mode: the primary
// clinic table first, the static snapshot when the table yields nothing
// usable. Each resolution returns the provenance of the data it used.
type ResolverService struct {
	primary  repositories.ClinicSource
	fallback repositories.SnapshotSource
	curation repositories.CurationRepository
}

// NewResolverService creates a new resolver service. curation may be nil
// when no correction set is configured.
func NewResolverService(
	primary repositories.ClinicSource,
	fallback repositories.SnapshotSource,
	curation repositories.CurationRepository,
) *ResolverService {
	return &ResolverService{
		primary:  primary,
		fallback: fallback,
		curation: curation,
	}
}

// Resolve produces one clinic set. Primary-source failures are logged and
// demoted to "zero rows"; only the combination of an unusable primary and a
// failed snapshot fetch surfaces as ErrAllSourcesExhausted. Both sources
// being genuinely empty is an empty fallback-tagged result, not an error.
func (s *ResolverService) Resolve(ctx context.Context) (*entities.ClinicSet, error) {
	clinics := s.fromPrimary(ctx)
	source := entities.SourcePrimary

	if len(clinics) == 0 {
		source = entities.SourceFallback

		fallback, err := s.fallback.FetchAll(ctx)
		if err != nil {
			log.Error().Err(err).Msg("clinic snapshot fetch failed after empty primary source")
			return nil, ErrAllSourcesExhausted
		}
		clinics = fallback
	}

	clinics = dedupeClinics(clinics)
	s.curate(ctx, clinics)
	sortClinicsByName(clinics)

	return &entities.ClinicSet{Clinics: clinics, Source: source}, nil
}

// fromPrimary fetches and normalizes the primary table. Any failure is
// treated as an empty result so resolution falls through to the snapshot.
func (s *ResolverService) fromPrimary(ctx context.Context) []entities.Clinic {
	records, err := s.primary.FetchAll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("primary clinic source unavailable, falling back")
		return nil
	}

	clinics := make([]entities.Clinic, 0, len(records))
	for _, record := range records {
		clinic, ok := normalize.Record(record)
		if !ok {
			log.Debug().Msg("discarding clinic row without a usable name")
			continue
		}
		clinics = append(clinics, clinic)
	}
	return clinics
}

func (s *ResolverService) curate(ctx context.Context, clinics []entities.Clinic) {
	if s.curation == nil {
		return
	}
	overrides, err := s.curation.Overrides(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("curation overrides unavailable, serving uncorrected data")
		return
	}
	applyOverrides(clinics, overrides)
}
