// Command acquire runs one clinic acquisition cycle against the generative
// API and refreshes the static snapshot file that the directory uses as its
// fallback source. Run it on a schedule, or by hand after editing the
// curation overrides.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Vetlyst2025/Vetlyst102525/internal/adapters/cache"
	"github.com/Vetlyst2025/Vetlyst102525/internal/adapters/curation"
	"github.com/Vetlyst2025/Vetlyst102525/internal/application/services"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/providers"
	"github.com/Vetlyst2025/Vetlyst102525/internal/infrastructure/clients/gemini"
	"github.com/Vetlyst2025/Vetlyst102525/internal/infrastructure/clients/redis"
	"github.com/Vetlyst2025/Vetlyst102525/internal/infrastructure/observability"
	"github.com/Vetlyst2025/Vetlyst102525/pkg/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("vetlyst-acquire", cfg.Logging.Environment)

	acquirer, err := gemini.NewClient(&cfg.Gemini)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gemini client")
	}

	backend, cleanup := cacheBackend(cfg)
	defer cleanup()

	clinicCache := cache.NewClinicCache(backend, cfg.Data.CacheTTL)
	curationRepo := curation.NewFileAdapter(cfg.Data.CurationPath)
	svc := services.NewAcquisitionService(acquirer, clinicCache, curationRepo, cfg.Data.EnrichWorkers)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	set, err := svc.Resolve(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("acquisition cycle failed")
	}

	if err := writeSnapshot(cfg.Data.SnapshotPath, set.Clinics); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Data.SnapshotPath).Msg("failed to write snapshot")
	}

	log.Info().
		Int("clinics", len(set.Clinics)).
		Str("source", string(set.Source)).
		Str("path", cfg.Data.SnapshotPath).
		Msg("snapshot refreshed")
}

// cacheBackend picks Redis when reachable so the API process sees the same
// cache this cycle writes; otherwise the cycle runs with a private
// in-memory slot.
func cacheBackend(cfg *config.Config) (providers.CacheProvider, func()) {
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, acquisition will not share its cache")
		return cache.NewMemoryAdapter(), func() {}
	}
	return cache.NewRedisAdapter(redisClient), func() { redisClient.Close() }
}

func writeSnapshot(path string, clinics []entities.Clinic) error {
	data, err := json.MarshalIndent(clinics, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
