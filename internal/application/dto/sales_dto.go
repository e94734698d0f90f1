package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleResponse venta con sus líneas y el rastro de consumos por línea.
type SaleResponse struct {
	ID                string          `json:"id"`
	ExternalPaymentID string          `json:"external_payment_id"`
	LocationID        string          `json:"location_id"`
	CreatedAt         time.Time       `json:"created_at"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	Items             []SaleItemDTO   `json:"items"`
}

// SaleItemDTO línea de venta con su auditoría de consumo FIFO.
type SaleItemDTO struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	Cost         decimal.Decimal  `json:"cost"`
	Consumptions []ConsumptionDTO `json:"consumptions"`
}

// ConsumptionDTO fila de auditoría: qué lote financió qué parte del costo.
type ConsumptionDTO struct {
	InventoryLotID string          `json:"inventory_lot_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	ConsumedAt     time.Time       `json:"consumed_at"`
}

// TokenRequest cuerpo de POST /api/auth/token.
type TokenRequest struct {
	OperatorKey string `json:"operator_key"`
}

// TokenResponse token emitido para el API de operación.
type TokenResponse struct {
	Token string `json:"token"`
}
