package repository

import (
	"context"

	"github.com/vendipos/backoffice-api/internal/domain/entity"
)

// InventoryConsumptionRepository define el puerto para el registro de auditoría
// de consumos. Solo inserta y lista: las filas nunca se actualizan ni borran.
type InventoryConsumptionRepository interface {
	Create(ctx context.Context, c *entity.InventoryConsumption) error
	ListBySaleItem(ctx context.Context, saleItemID string) ([]*entity.InventoryConsumption, error)
}
