// restore-seed is a one-shot tool that migrates the database and restores the reference data.
// Run it to reset a database to the standard materials, suppliers, projects, forecasts and orders.
//
// Usage: go run ./cmd/restore-seed
package main

import (
	"context"
	"log"

	"grid-supply/internal/bootstrap"
	"grid-supply/internal/config"
	"grid-supply/internal/core"
	"grid-supply/internal/db"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, logger.Named("migrate")); err != nil {
		logger.Fatal("Failed to migrate", zap.Error(err))
	}

	seed := core.SeedData()
	if err := db.NewStore(pool).Restore(ctx, seed); err != nil {
		logger.Fatal("Failed to restore seed data", zap.Error(err))
	}
	logger.Info("Seed data restored",
		zap.Int("materials", len(seed.Materials)),
		zap.Int("suppliers", len(seed.Suppliers)),
		zap.Int("projects", len(seed.Projects)),
		zap.Int("forecast_entries", len(seed.ForecastEntries)),
		zap.Int("procurement_orders", len(seed.ProcurementOrders)),
	)
}
