package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Vetlyst2025/Vetlyst102525/internal/adapters/cache"
	"github.com/Vetlyst2025/Vetlyst102525/internal/adapters/curation"
	"github.com/Vetlyst2025/Vetlyst102525/internal/adapters/database"
	"github.com/Vetlyst2025/Vetlyst102525/internal/adapters/snapshot"
	"github.com/Vetlyst2025/Vetlyst102525/internal/api/handlers"
	"github.com/Vetlyst2025/Vetlyst102525/internal/api/routes"
	"github.com/Vetlyst2025/Vetlyst102525/internal/application/services"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/providers"
	"github.com/Vetlyst2025/Vetlyst102525/internal/infrastructure/clients/gemini"
	"github.com/Vetlyst2025/Vetlyst102525/internal/infrastructure/clients/postgres"
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

	observability.InitLogger("vetlyst-api", cfg.Logging.Environment)

	resolver, cleanup, err := buildResolver(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build clinic resolver")
	}
	defer cleanup()

	clinicHandler := handlers.NewClinicHandler(resolver)
	appointmentHandler := handlers.NewAppointmentHandler(services.NewAppointmentService())

	router := routes.NewRouter(clinicHandler, appointmentHandler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Str("mode", cfg.Data.Mode).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

// buildResolver wires the resolver for the configured data mode. The
// returned cleanup closes whatever clients were opened.
func buildResolver(cfg *config.Config) (services.ClinicResolver, func(), error) {
	curationRepo := curation.NewFileAdapter(cfg.Data.CurationPath)
	snapshotSource := snapshot.NewFileAdapter(cfg.Data.SnapshotPath)

	if cfg.Data.Mode == config.DataModeSelfContained {
		acquirer, err := gemini.NewClient(&cfg.Gemini)
		if err != nil {
			return nil, nil, err
		}

		backend, cleanup := cacheBackend(cfg)
		clinicCache := cache.NewClinicCache(backend, cfg.Data.CacheTTL)
		svc := services.NewAcquisitionService(acquirer, clinicCache, curationRepo, cfg.Data.EnrichWorkers)
		return svc, cleanup, nil
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		// The snapshot still serves the directory when the database is
		// down; resolution falls through to it on every request.
		log.Warn().Err(err).Msg("postgres unavailable, directory will serve from snapshot")
		resolver := services.NewResolverService(unavailableSource{err}, snapshotSource, curationRepo)
		return resolver, func() {}, nil
	}

	primary := database.NewClinicAdapter(pgClient, cfg.Data.ClinicTable)
	resolver := services.NewResolverService(primary, snapshotSource, curationRepo)
	return resolver, func() { pgClient.Close() }, nil
}

// cacheBackend picks Redis when reachable and an in-process map otherwise.
func cacheBackend(cfg *config.Config) (providers.CacheProvider, func()) {
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory clinic cache")
		return cache.NewMemoryAdapter(), func() {}
	}
	return cache.NewRedisAdapter(redisClient), func() { redisClient.Close() }
}

// unavailableSource is the primary source stand-in when Postgres could not
// be reached at startup; every fetch reports the original failure.
type unavailableSource struct {
	err error
}

func (s unavailableSource) FetchAll(ctx context.Context) ([]map[string]interface{}, error) {
	return nil, s.err
}
