package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveLotRequest cuerpo de POST /api/inventory/receipts.
type ReceiveLotRequest struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	ReceivedAt *time.Time      `json:"received_at,omitempty"` // omitido = ahora
	Source     string          `json:"source,omitempty"`
}

// InventoryLotDTO lote con cantidad restante, para el API de operación.
type InventoryLotDTO struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	ReceivedAt time.Time       `json:"received_at"`
	Source     string          `json:"source,omitempty"`
}

// CreateProductRequest cuerpo de POST /api/products.
type CreateProductRequest struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// ProductDTO producto interno.
type ProductDTO struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
