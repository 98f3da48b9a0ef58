package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/themobileprof/portfolio-concierge/internal/api"
	"github.com/themobileprof/portfolio-concierge/internal/api/middleware"
	"github.com/themobileprof/portfolio-concierge/internal/cache"
	"github.com/themobileprof/portfolio-concierge/internal/chat"
	"github.com/themobileprof/portfolio-concierge/internal/circuitbreaker"
	"github.com/themobileprof/portfolio-concierge/internal/config"
	"github.com/themobileprof/portfolio-concierge/internal/db"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
	"github.com/themobileprof/portfolio-concierge/internal/observability"
	"github.com/themobileprof/portfolio-concierge/internal/ws"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// the logger is configured from cfg, so fall back to a default one
		boot := observability.NewLogger(observability.LogConfig{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database (optional)
	var database *db.DB
	if cfg.HasDatabase() {
		database, err = db.Open(ctx, db.Config{
			URL:             cfg.DatabaseURL,
			MaxConnections:  10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate database")
		}
		logger.Info().Msg("database connected")
	}

	// Knowledge store
	var source knowledge.Source
	switch cfg.KnowledgeSource {
	case config.SourcePostgres:
		breaker := circuitbreaker.New(circuitbreaker.DefaultConfig("knowledge_records"), logger)
		source = db.NewKnowledgeRepository(database, breaker)
	default:
		source = knowledge.FileSource{Path: cfg.KnowledgePath}
	}
	store := knowledge.NewStore(source, logger)
	if _, err := store.Reload(ctx); err != nil {
		// keep serving: answers degrade to the built-in fallback and /health reports 503
		logger.Error().Err(err).Msg("initial knowledge load failed")
	}

	// Answer cache
	answerCache, err := buildCache(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize answer cache")
	}
	if answerCache != nil {
		defer answerCache.Close()
	}

	// Chat engine (shared between HTTP and WebSocket)
	engineOpts := []chat.Option{chat.WithLogger(logger)}
	if answerCache != nil {
		engineOpts = append(engineOpts, chat.WithCache(answerCache, cfg.CacheTTL))
	}
	var queryLog *db.QueryLog
	if database != nil && cfg.QueryLog {
		queryLog = db.NewQueryLog(database, circuitbreaker.New(circuitbreaker.DefaultConfig("query_log"), logger))
		engineOpts = append(engineOpts, chat.WithQueryLog(queryLog, cfg.VisitorSalt))
		logger.Info().Msg("query log enabled")
	}
	engine := chat.NewEngine(store, engineOpts...)

	limiter := middleware.PerMinute(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	chatHandler := ws.NewChatHandler(engine, cfg.AllowedOrigins, cfg.RateLimitPerMinute, cfg.RateLimitBurst, logger)

	features := middleware.Features{
		middleware.FeatureReload:   true,
		middleware.FeatureQueryLog: queryLog != nil,
	}

	routerCfg := api.RouterConfig{
		Engine:         engine,
		Store:          store,
		Version:        version,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    limiter,
		Features:       features,
		Chat:           chatHandler.HandleChat,
	}
	if cfg.HasAdmin() {
		routerCfg.AdminPasswordHash = cfg.AdminPasswordHash
		routerCfg.JWTSecret = cfg.JWTSecret
		routerCfg.Auth = api.NewAuthHandler(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.JWTTTL)
		if queryLog != nil {
			routerCfg.QueryLog = queryLog
		}
		logger.Info().Msg("admin API enabled")
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		limiter.Run(gctx)
		return nil
	})

	if cfg.WatchesFile() {
		watcher := knowledge.NewWatcher(store, cfg.KnowledgePath, cfg.WatchDebounce, logger)
		g.Go(func() error {
			if err := watcher.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				// hot reload is a convenience; the admin reload endpoint still works
				logger.Error().Err(err).Msg("knowledge watcher stopped")
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info().
			Str("port", cfg.Port).
			Str("knowledge_source", source.Name()).
			Str("version", version).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
	logger.Info().Msg("server exited")
}

func buildCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (cache.Client, error) {
	var local cache.Client
	if cfg.CacheSize > 0 {
		lru, err := cache.NewLRU(cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		local = lru
	}

	if !cfg.HasRedis() {
		return local, nil
	}

	shared, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("redis answer cache connected")

	if local == nil {
		return shared, nil
	}
	return cache.NewTiered(local, shared, time.Minute), nil
}
