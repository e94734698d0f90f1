package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/vendipos/backoffice-api/internal/application/inventory"
	"github.com/vendipos/backoffice-api/internal/application/sales"
	"github.com/vendipos/backoffice-api/internal/infrastructure/postgres"
	"github.com/vendipos/backoffice-api/internal/infrastructure/queue"
	httpRouter "github.com/vendipos/backoffice-api/internal/interfaces/http"
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
		Msg("iniciando API")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	lotRepo := postgres.NewInventoryLotRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	saleItemRepo := postgres.NewSaleItemRepository(pool)
	consumptionRepo := postgres.NewInventoryConsumptionRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)

	enqueuer := queue.NewEnqueuer(cfg.Redis, cfg.Queue)
	defer enqueuer.Close()

	receiveLotUC := inventory.NewReceiveLotUseCase(lotRepo, productRepo, locationRepo)
	saleQueryUC := sales.NewSaleQueryUseCase(saleRepo, saleItemRepo, consumptionRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Enqueuer:   enqueuer,
		ReceiveLot: receiveLotUC,
		SaleQuery:  saleQueryUC,
		Lots:       lotRepo,
		Products:   productRepo,
		Square:     cfg.Square,
		JWT:        cfg.JWT,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("API detenida")
}
