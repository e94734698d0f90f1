package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vendipos/backoffice-api/internal/application/dto"
	"github.com/vendipos/backoffice-api/internal/application/inventory"
	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

// InventoryHandler maneja recepción y consulta de lotes.
type InventoryHandler struct {
	receiveUC *inventory.ReceiveLotUseCase
	lots      repository.InventoryLotRepository
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(receiveUC *inventory.ReceiveLotUseCase, lots repository.InventoryLotRepository) *InventoryHandler {
	return &InventoryHandler{receiveUC: receiveUC, lots: lots}
}

// ReceiveLot procesa POST /api/inventory/receipts.
func (h *InventoryHandler) ReceiveLot(c *fiber.Ctx) error {
	var in dto.ReceiveLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	var receivedAt time.Time
	if in.ReceivedAt != nil {
		receivedAt = *in.ReceivedAt
	}
	lot, err := h.receiveUC.ReceiveLot(c.Context(), inventory.ReceiveLotInput{
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		ReceivedAt: receivedAt,
		Source:     in.Source,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id, location_id, quantity > 0 y unit_cost >= 0 son requeridos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o ubicación no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toLotDTO(lot))
}

// ListLots procesa GET /api/inventory/lots?product_id=&location_id=.
// Devuelve los lotes disponibles en orden FIFO.
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	locationID := c.Query("location_id")
	if productID == "" || locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y location_id son requeridos"})
	}
	lots, err := h.lots.ListAvailable(c.Context(), productID, locationID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.InventoryLotDTO, 0, len(lots))
	for _, lot := range lots {
		out = append(out, toLotDTO(lot))
	}
	return c.JSON(out)
}

func toLotDTO(lot *entity.InventoryLot) dto.InventoryLotDTO {
	return dto.InventoryLotDTO{
		ID:         lot.ID,
		ProductID:  lot.ProductID,
		LocationID: lot.LocationID,
		Quantity:   lot.Quantity,
		UnitCost:   lot.UnitCost,
		ReceivedAt: lot.ReceivedAt,
		Source:     lot.Source,
	}
}
