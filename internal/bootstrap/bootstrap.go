// Package bootstrap assembles the ApplicationService from configuration for every binary.
package bootstrap

import (
	"context"
	"fmt"

	"grid-supply/internal/app"
	"grid-supply/internal/config"
	"grid-supply/internal/core"
	"grid-supply/internal/db"
	"grid-supply/internal/logging"
	"grid-supply/internal/memstore"
	"grid-supply/internal/predictor"

	"go.uber.org/zap"
)

// Runtime is a wired service and the resources it holds.
type Runtime struct {
	Config  *config.Config
	Logger  *zap.Logger
	Service app.ApplicationService
	closers []func()
}

// Close releases the database pool and predictor connections and flushes the logger.
func (r *Runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	_ = r.Logger.Sync()
}

// NewLogger builds the logger described by cfg.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Config{
		Level:       cfg.Logger.Level,
		Encoding:    cfg.Logger.Encoding,
		Development: cfg.Server.AppEnv == "development",
	})
}

// Open loads configuration and wires the store, the predictor client and the application service.
// With DATABASE_URL set the Postgres store is migrated and used; otherwise the seeded memory store.
func Open(ctx context.Context) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{Config: cfg, Logger: logger}

	var store core.Store
	storeName := "memory"
	if cfg.Database.URL != "" {
		pool, err := db.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		rt.closers = append(rt.closers, pool.Close)
		if err := db.Migrate(ctx, pool, logger.Named("migrate")); err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		store = db.NewStore(pool)
		storeName = "postgres"
	} else {
		logger.Info("DATABASE_URL not set, using seeded in-memory store")
		store = memstore.NewSeeded()
	}

	var pred core.Predictor
	if cfg.Forecast.BaseURL != "" {
		client := predictor.New(predictor.Config{BaseURL: cfg.Forecast.BaseURL, Timeout: cfg.Forecast.Timeout})
		rt.closers = append(rt.closers, client.Close)
		pred = client
	}

	rt.Service = app.NewAppService(store, storeName, pred, cfg.Policy, logger, nil)
	logger.Debug("service wired",
		zap.String("store", storeName),
		zap.String("forecast_api", cfg.Forecast.BaseURL),
		zap.Duration("forecast_timeout", cfg.Forecast.Timeout),
	)
	return rt, nil
}
