package main

import (
	"context"

	"github.com/vendipos/backoffice-api/internal/application/sales"
	"github.com/vendipos/backoffice-api/internal/infrastructure/cache"
	"github.com/vendipos/backoffice-api/internal/infrastructure/postgres"
	"github.com/vendipos/backoffice-api/internal/infrastructure/queue"
	"github.com/vendipos/backoffice-api/internal/infrastructure/square"
	"github.com/vendipos/backoffice-api/pkg/config"
	"github.com/vendipos/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("concurrency", cfg.Queue.Concurrency).
		Msg("iniciando worker")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	saleRepo := postgres.NewSaleRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	mappingRepo := cache.NewCatalogMappingCache(
		postgres.NewCatalogMappingRepository(pool),
		cfg.Cache.MappingTTL,
	)
	txRunner := postgres.NewTxRunner(pool)

	mapper := sales.NewCatalogMapper(locationRepo, mappingRepo, productRepo)
	orderClient := square.NewClient(cfg.Square.BaseURL, cfg.Square.Token, cfg.Square.APIVersion)
	processUC := sales.NewProcessPaymentUseCase(txRunner, locationRepo, saleRepo, mapper, orderClient, log)

	srv := queue.NewServer(cfg.Redis, cfg.Queue, log)
	srv.Register(queue.TypeProcessSale, queue.NewSaleSyncHandler(processUC, cfg.Queue.InsufficientStockRetries, log))

	// Run bloquea hasta SIGINT/SIGTERM y drena los jobs en vuelo antes de salir.
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("servidor de workers finalizado con error")
	}

	log.Info().Msg("worker detenido")
}
