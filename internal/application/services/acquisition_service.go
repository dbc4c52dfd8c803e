package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Vetlyst2025/Vetlyst102525/internal/adapters/cache"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/providers"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/repositories"
	apperrors "github.com/Vetlyst2025/Vetlyst102525/pkg/errors"
)

// AcquisitionService resolves the clinic list in self-contained mode: a
// TTL-boxed cache in front of the generative acquisition API, with the
// stale cache as the last-resort fallback when the live fetch fails.
type AcquisitionService struct {
	acquirer providers.ClinicAcquirer
	cache    *cache.ClinicCache
	curation repositories.CurationRepository

	enrichWorkers int
	now           func() time.Time
}

// NewAcquisitionService creates a new acquisition service. curation may be
// nil when no correction set is configured.
func NewAcquisitionService(
	acquirer providers.ClinicAcquirer,
	clinicCache *cache.ClinicCache,
	curation repositories.CurationRepository,
	enrichWorkers int,
) *AcquisitionService {
	if enrichWorkers <= 0 {
		enrichWorkers = 4
	}
	return &AcquisitionService{
		acquirer:      acquirer,
		cache:         clinicCache,
		curation:      curation,
		enrichWorkers: enrichWorkers,
		now:           time.Now,
	}
}

// Resolve produces one clinic set. A fresh cache entry is served as-is; a
// miss or stale entry triggers a live acquisition cycle whose result
// overwrites the cache. When the live fetch fails, any existing cache entry
// (fresh or stale) is served in its place; only the combination of a failed
// fetch and an empty cache propagates as an error.
func (s *AcquisitionService) Resolve(ctx context.Context) (*entities.ClinicSet, error) {
	entry, cached := s.cache.Read(ctx)
	if cached && s.cache.Fresh(entry, s.now()) {
		return &entities.ClinicSet{Clinics: entry.Payload, Source: entities.SourceCache}, nil
	}

	clinics, err := s.fetchLive(ctx)
	if err != nil {
		if cached {
			log.Warn().Err(err).
				Time("cached_at", time.UnixMilli(entry.FetchedAtMs)).
				Msg("live clinic acquisition failed, serving stale cache")
			return &entities.ClinicSet{Clinics: entry.Payload, Source: entities.SourceCache}, nil
		}
		return nil, apperrors.NewExternalError("clinic acquisition failed with no cached fallback", err)
	}

	s.cache.Write(ctx, clinics, s.now())
	return &entities.ClinicSet{Clinics: clinics, Source: entities.SourcePrimary}, nil
}

func (s *AcquisitionService) fetchLive(ctx context.Context) ([]entities.Clinic, error) {
	clinics, err := s.acquirer.GenerateClinics(ctx)
	if err != nil {
		return nil, err
	}

	clinics = dedupeClinics(clinics)
	if s.curation != nil {
		overrides, err := s.curation.Overrides(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("curation overrides unavailable, serving uncorrected data")
		} else {
			applyOverrides(clinics, overrides)
		}
	}

	s.enrichWebsites(ctx, clinics)
	sortClinicsByName(clinics)
	return clinics, nil
}

// enrichWebsites fills in missing website URLs with one lookup per clinic,
// fanned out over a bounded group. Each task writes only its own slot and
// converts its own failure into a no-op, so the group join never fails.
func (s *AcquisitionService) enrichWebsites(ctx context.Context, clinics []entities.Clinic) {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.enrichWorkers)

	for i := range clinics {
		if hasValidWebsite(clinics[i].WebsiteURL) {
			continue
		}
		group.Go(func() error {
			url, err := s.acquirer.FindWebsite(ctx, clinics[i].Name, clinics[i].Address)
			if err != nil {
				log.Warn().Err(err).Str("clinic", clinics[i].Name).Msg("website lookup failed")
				return nil
			}
			clinics[i].WebsiteURL = url
			return nil
		})
	}

	_ = group.Wait()
}

func hasValidWebsite(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
