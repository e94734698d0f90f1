package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

var _ repository.InventoryConsumptionRepository = (*InventoryConsumptionRepo)(nil)

// InventoryConsumptionRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE.
type InventoryConsumptionRepo struct {
	q Querier
}

// NewInventoryConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryConsumptionRepository(q Querier) *InventoryConsumptionRepo {
	return &InventoryConsumptionRepo{q: q}
}

// Create apunta una fila de auditoría (línea de venta, lote consumido).
func (r *InventoryConsumptionRepo) Create(ctx context.Context, c *entity.InventoryConsumption) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.ConsumedAt.IsZero() {
		c.ConsumedAt = time.Now()
	}
	query := `
		INSERT INTO inventory_consumptions (id, inventory_lot_id, sale_item_id, quantity, unit_cost, total_cost, consumed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.InventoryLotID, c.SaleItemID, c.Quantity, c.UnitCost, c.TotalCost, c.ConsumedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory consumption: %w", err)
	}
	return nil
}

// ListBySaleItem lista los consumos de una línea en orden de consumo.
func (r *InventoryConsumptionRepo) ListBySaleItem(ctx context.Context, saleItemID string) ([]*entity.InventoryConsumption, error) {
	query := `
		SELECT id, inventory_lot_id, sale_item_id, quantity, unit_cost, total_cost, consumed_at
		FROM inventory_consumptions WHERE sale_item_id = $1 ORDER BY consumed_at, id`
	rows, err := r.q.Query(ctx, query, saleItemID)
	if err != nil {
		return nil, fmt.Errorf("list consumptions: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryConsumption
	for rows.Next() {
		var c entity.InventoryConsumption
		if err := rows.Scan(&c.ID, &c.InventoryLotID, &c.SaleItemID, &c.Quantity, &c.UnitCost, &c.TotalCost, &c.ConsumedAt); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
