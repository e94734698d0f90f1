package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada desde un pago externo.
// ExternalPaymentID es único: es la clave de idempotencia de todo el pipeline.
// Los totales se escriben una sola vez al finalizar las líneas y no se recalculan.
type Sale struct {
	ID                string
	ExternalPaymentID string
	LocationID        string
	CreatedAt         time.Time
	TotalRevenue      decimal.Decimal
	TotalCost         decimal.Decimal
	GrossProfit       decimal.Decimal
}

// SaleItem es una línea de venta. Cost es una foto inmutable del costo FIFO al
// momento de crearse; no se recalcula aunque cambien los costos de lotes futuros.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Cost      decimal.Decimal
}
