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
	"github.com/Pesokrava/storefront/internal/delivery/cli"
	"github.com/Pesokrava/storefront/internal/pkg/database"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/repository/sqlcatalog"
	"github.com/Pesokrava/storefront/internal/usecase/product"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	if cfg.LogLevel != "" {
		if err := logger.SetLevel(cfg.LogLevel); err != nil {
			appLogger.Fatal("Invalid LOG_LEVEL", err)
		}
	}
	logger.SetGlobalLogger(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed, err := loadSeed(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load catalog", err)
	}

	store, err := catalog.Build(seed, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build catalog", err)
	}

	menu := cli.NewMenu(
		store,
		product.NewService(store, appLogger),
		os.Stdin,
		os.Stdout,
		cli.Options{ShopName: cfg.Shop.Name, Currency: cfg.Shop.Currency},
		appLogger,
	)

	if err := menu.Run(ctx); err != nil {
		appLogger.Warnf("Menu stopped: %v", err)
	}
	appLogger.Info("Storefront closed")
}

func loadSeed(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (*catalog.Seed, error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		appLogger.Infof("Loading catalog from %s", cfg.Catalog.File)
		return catalog.LoadFile(cfg.Catalog.File)
	case config.SourceDatabase:
		appLogger.Infof("Loading catalog from %s database", cfg.Database.Driver)
		db, err := database.WaitForDB(ctx, cfg, 10, 2*time.Second)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return sqlcatalog.NewCatalogRepository(db).LoadSeed(ctx)
	default:
		return catalog.DefaultSeed(), nil
	}
}
