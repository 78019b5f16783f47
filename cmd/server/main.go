package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nutriswap/backend/config"
	httpDelivery "github.com/nutriswap/backend/internal/delivery/http"
	"github.com/nutriswap/backend/internal/domain"
	"github.com/nutriswap/backend/internal/infrastructure/cache"
	"github.com/nutriswap/backend/internal/infrastructure/dataset"
	"github.com/nutriswap/backend/internal/infrastructure/history"
	"github.com/nutriswap/backend/internal/infrastructure/logging"
	"github.com/nutriswap/backend/internal/infrastructure/metrics"
	"github.com/nutriswap/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Server.Environment == "development",
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting nutriswap backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
	)

	// Dataset and resolver
	provider := dataset.NewProvider(dataset.NewLoader(dataset.Files{
		Groups:    cfg.Dataset.GroupsFile,
		Foods:     cfg.Dataset.FoodsFile,
		Nutrients: cfg.Dataset.NutrientsFile,
	}, logger))
	resolver := usecase.NewResolver(provider.Catalog(), logger)

	var table usecase.SubstitutionTable
	if cfg.Dataset.SubstitutionsFile != "" {
		table, err = usecase.LoadSubstitutionTable(cfg.Dataset.SubstitutionsFile)
		if err != nil {
			logger.Fatal("failed to load substitution table",
				zap.String("path", cfg.Dataset.SubstitutionsFile),
				zap.Error(err),
			)
		}
		logger.Info("substitution table loaded", zap.String("path", cfg.Dataset.SubstitutionsFile))
	}

	selector := usecase.NewDefaultStrategySelector(resolver, table)
	recommender := usecase.NewRecommender(selector, usecase.RecommenderConfig{
		MaxPerGoal:     cfg.Swap.MaxPerGoal,
		MinImpactScore: cfg.Swap.MinImpact,
	}, logger)

	// Infrastructure
	swapCache, closeCache, err := newCache(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize cache", zap.Error(err))
	}
	defer func() { _ = closeCache.Close() }()

	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		logger.Fatal("failed to open swap history", zap.String("path", cfg.History.Path), zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	swapService := usecase.NewSwapService(resolver, selector, recommender, swapCache, store,
		usecase.SwapServiceConfig{
			CacheTTL: cfg.Cache.TTL,
			Match: usecase.MatchConfig{
				MinScore:       cfg.Swap.MinSuggestionScore,
				MaxSuggestions: cfg.Swap.MaxSuggestions,
			},
		}, logger)

	var serviceMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		serviceMetrics = metrics.New("nutriswap")
		swapService.SetMetrics(serviceMetrics)
		if sized, ok := swapCache.(interface{ Size() int }); ok {
			serviceMetrics.TrackCacheEntries(sized.Size)
		}
		logger.Info("metrics enabled", zap.String("path", cfg.Metrics.Path))
	}

	handler := httpDelivery.NewHandler(swapService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger, serviceMetrics)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
}

// newCache builds the configured recommendation cache
func newCache(cfg *config.Config, logger *zap.Logger) (domain.CacheRepository, io.Closer, error) {
	if cfg.Cache.Type == "redis" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "nutriswap", logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis cache", zap.Duration("ttl", cfg.Cache.TTL))
		return redisCache, redisCache, nil
	}

	memoryCache := cache.NewMemoryCache(cache.MemoryConfig{MaxEntries: cfg.Cache.MaxEntries})
	logger.Info("using memory cache",
		zap.Duration("ttl", cfg.Cache.TTL),
		zap.Int("max_entries", cfg.Cache.MaxEntries),
	)
	return memoryCache, memoryCache, nil
}
