package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
)

// InventoryLotRepository define el puerto de persistencia para lotes de inventario.
type InventoryLotRepository interface {
	Create(ctx context.Context, lot *entity.InventoryLot) error
	GetByID(ctx context.Context, id string) (*entity.InventoryLot, error)
	// ListAvailable devuelve los lotes con cantidad > 0 ordenados por received_at
	// ascendente (orden FIFO). Solo lectura, para consultas de operación.
	ListAvailable(ctx context.Context, productID, locationID string) ([]*entity.InventoryLot, error)
	// ListAvailableForUpdate es igual pero bloquea las filas (SELECT FOR UPDATE).
	// Debe usarse dentro de la transacción que luego decrementa esos lotes.
	ListAvailableForUpdate(ctx context.Context, productID, locationID string) ([]*entity.InventoryLot, error)
	// Deduct decrementa la cantidad restante del lote. El UPDATE lleva guarda
	// quantity >= $qty; si no afecta filas devuelve LedgerCorruptionError.
	Deduct(ctx context.Context, lotID string, quantity decimal.Decimal) error
}
