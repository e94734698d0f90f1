package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vendipos/backoffice-api/internal/application/dto"
	"github.com/vendipos/backoffice-api/internal/application/sales"
	"github.com/vendipos/backoffice-api/internal/domain"
)

// SalesHandler expone la consulta de ventas con su auditoría de costeo.
type SalesHandler struct {
	queryUC *sales.SaleQueryUseCase
}

// NewSalesHandler construye el handler de ventas.
func NewSalesHandler(queryUC *sales.SaleQueryUseCase) *SalesHandler {
	return &SalesHandler{queryUC: queryUC}
}

// GetByExternalPaymentID procesa GET /api/sales/:external_payment_id.
func (h *SalesHandler) GetByExternalPaymentID(c *fiber.Ctx) error {
	externalPaymentID := c.Params("external_payment_id")
	if externalPaymentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "external_payment_id es requerido"})
	}
	result, err := h.queryUC.GetByExternalPaymentID(c.Context(), externalPaymentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la venta no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toSaleResponse(result))
}

func toSaleResponse(r *sales.SaleWithAudit) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:                r.Sale.ID,
		ExternalPaymentID: r.Sale.ExternalPaymentID,
		LocationID:        r.Sale.LocationID,
		CreatedAt:         r.Sale.CreatedAt,
		TotalRevenue:      r.Sale.TotalRevenue,
		TotalCost:         r.Sale.TotalCost,
		GrossProfit:       r.Sale.GrossProfit,
		Items:             make([]dto.SaleItemDTO, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		itemDTO := dto.SaleItemDTO{
			ID:           item.Item.ID,
			ProductID:    item.Item.ProductID,
			Quantity:     item.Item.Quantity,
			UnitPrice:    item.Item.UnitPrice,
			Cost:         item.Item.Cost,
			Consumptions: make([]dto.ConsumptionDTO, 0, len(item.Consumptions)),
		}
		for _, cons := range item.Consumptions {
			itemDTO.Consumptions = append(itemDTO.Consumptions, dto.ConsumptionDTO{
				InventoryLotID: cons.InventoryLotID,
				Quantity:       cons.Quantity,
				UnitCost:       cons.UnitCost,
				TotalCost:      cons.TotalCost,
				ConsumedAt:     cons.ConsumedAt,
			})
		}
		out.Items = append(out.Items, itemDTO)
	}
	return out
}
