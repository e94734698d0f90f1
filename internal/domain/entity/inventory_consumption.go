package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryConsumption es el registro de auditoría que une una línea de venta
// con el lote que financió su costo. Append-only: nunca se actualiza ni borra.
// Permite reconstruir, para cualquier SaleItem, qué lotes y cantidades
// produjeron su costo, y verificar el cumplimiento FIFO de forma independiente.
type InventoryConsumption struct {
	ID             string
	InventoryLotID string
	SaleItemID     string
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal // costo unitario del lote al momento del consumo
	TotalCost      decimal.Decimal
	ConsumedAt     time.Time
}
