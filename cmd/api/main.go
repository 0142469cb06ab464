package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"cleverai/api/internal/cache"
	"cleverai/api/internal/config"
	"cleverai/api/internal/database"
	"cleverai/api/internal/handlers"
	"cleverai/api/internal/jobs"
	"cleverai/api/internal/llm"
	"cleverai/api/internal/log"
	"cleverai/api/internal/repository"
	"cleverai/api/internal/security"
	"cleverai/api/internal/server"
	"cleverai/api/internal/service"
	"cleverai/api/internal/session"
	"cleverai/api/internal/storage"
)

// resources are the connections main owns and closes on shutdown. Either may be nil.
type resources struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()
	var res resources
	deps := handlers.Dependencies{
		Hasher: service.NewScryptHasher(security.DefaultParams()),
	}

	switch cfg.Repository.Driver {
	case "postgres":
		res.db, err = database.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect postgres")
		}
		if err := repository.EnsureSchema(ctx, res.db); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply schema")
		}
		deps.Users = repository.NewPostgresUserRepository(res.db)
		deps.Contacts = repository.NewPostgresContactRepository(res.db)
		deps.RepositoryPinger = res.db
	default:
		mem := repository.NewMemoryStorage()
		deps.Users = mem.Users()
		deps.Contacts = mem.Contacts()
	}

	storeOpts := []session.StoreOption{session.WithKeyPrefix(cfg.Session.KeyPrefix)}
	if cfg.Session.Driver == string(session.StoreTypeRedis) {
		res.redis, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		storeOpts = append(storeOpts, session.WithRedisClient(res.redis))
	}
	store, err := session.NewStore(session.StoreType(cfg.Session.Driver), storeOpts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build session store")
	}
	deps.Sessions = session.NewManager(store, cfg.Session.TTL)
	if p, ok := store.(handlers.Pinger); ok {
		deps.SessionPinger = p
	}
	// redis expires keys itself; only the in-process store needs sweeping
	sweeper, _ := store.(jobs.Sweeper)

	if cfg.OpenAI.APIKey == "" {
		logger.Warn().Msg("openai api key is not set; chat requests will fail")
	}
	deps.LLM = llm.NewOpenAIClient(cfg.OpenAI)

	if cfg.Archive.Enabled {
		objectStore, err := storage.NewObjectStore(cfg.Archive)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init contact archive")
		}
		if err := objectStore.EnsureBucket(ctx); err != nil {
			logger.Warn().Err(err).Msg("ensure archive bucket failed")
		}
		deps.Archiver = objectStore
	}

	handlerSet, err := handlers.NewHandlerSet(logger, cfg, deps)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build handlers")
	}
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	scheduler := jobs.NewScheduler(sweeper, cfg.Session.SweepSchedule, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	logger.Info().
		Str("sessions", cfg.Session.Driver).
		Dur("session_ttl", deps.Sessions.TTL()).
		Str("repository", cfg.Repository.Driver).
		Bool("archive", cfg.Archive.Enabled).
		Msg("backends ready")

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, res)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, res resources) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		logger.Warn().Msg("scheduler jobs still running at shutdown")
	}

	if res.db != nil {
		res.db.Close()
	}
	if res.redis != nil {
		if err := res.redis.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("server exited cleanly")
}
