package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	// Create inserta la venta. Devuelve domain.ErrDuplicate si ya existe una
	// venta con el mismo external_payment_id (índice único).
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByExternalPaymentID devuelve (nil, nil) si no existe.
	GetByExternalPaymentID(ctx context.Context, externalPaymentID string) (*entity.Sale, error)
	// UpdateTotals escribe los totales una única vez tras procesar las líneas.
	UpdateTotals(ctx context.Context, saleID string, revenue, cost, profit decimal.Decimal) error
}

// SaleItemRepository define el puerto de persistencia para líneas de venta.
type SaleItemRepository interface {
	Create(ctx context.Context, item *entity.SaleItem) error
	ListBySale(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
}
