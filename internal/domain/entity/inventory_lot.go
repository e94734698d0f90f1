package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLot representa un lote recibido de un producto en una ubicación.
// Quantity es la cantidad restante (nunca negativa); UnitCost y ReceivedAt son
// inmutables desde la recepción. ReceivedAt define el orden de consumo FIFO.
type InventoryLot struct {
	ID         string
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal // restante; solo la deducción por consumo la muta
	UnitCost   decimal.Decimal
	ReceivedAt time.Time
	Source     string // procedencia: compra, ajuste, carga inicial, etc.
	CreatedAt  time.Time
}
