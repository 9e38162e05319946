package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pesokrava/storefront/internal/catalog"
	"github.com/Pesokrava/storefront/internal/config"
	"github.com/Pesokrava/storefront/internal/pkg/database"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/repository/sqlcatalog"
)

// catalog-migrate creates the catalog tables and stores a seed in them.
// With CATALOG_SOURCE=file the seed comes from CATALOG_FILE, otherwise the built-in catalog is stored.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Infof("Connecting to %s...", cfg.Database.Driver)
	db, err := database.WaitForDB(ctx, cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", err)
	}
	appLogger.Info("Migrations applied")

	seed := catalog.DefaultSeed()
	if cfg.Catalog.Source == config.SourceFile {
		seed, err = catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			appLogger.Fatal("Failed to load catalog file", err)
		}
	}

	if err := sqlcatalog.NewCatalogRepository(db).SaveSeed(ctx, seed); err != nil {
		appLogger.Fatal("Failed to save catalog", err)
	}

	appLogger.WithFields(map[string]interface{}{
		"products":   len(seed.Products),
		"promotions": len(seed.Promotions),
	}).Info("Catalog stored")
}
