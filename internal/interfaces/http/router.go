package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vendipos/backoffice-api/internal/application/inventory"
	"github.com/vendipos/backoffice-api/internal/application/sales"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
	"github.com/vendipos/backoffice-api/pkg/config"
	"github.com/vendipos/backoffice-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Enqueuer   SaleEnqueuer
	ReceiveLot *inventory.ReceiveLotUseCase
	SaleQuery  *sales.SaleQueryUseCase
	Lots       repository.InventoryLotRepository
	Products   repository.ProductRepository
	Square     config.SquareConfig
	JWT        config.JWTConfig
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Webhooks (público; autenticado por firma HMAC)
	webhookHandler := NewWebhookHandler(deps.Enqueuer, deps.Square.SignatureKey, deps.Square.NotificationURL, deps.Log)
	app.Post("/webhooks/payments", webhookHandler.HandlePayment)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.JWT)
	api.Post("/auth/token", authHandler.Token)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWT.Secret))

	// Inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReceiveLot, deps.Lots)
	invGroup.Post("/receipts", inventoryHandler.ReceiveLot)
	invGroup.Get("/lots", inventoryHandler.ListLots)

	// Productos (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Products)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)

	// Ventas (protegido)
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SaleQuery)
	salesGroup.Get("/:external_payment_id", salesHandler.GetByExternalPaymentID)
}
