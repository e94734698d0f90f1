package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

// ReceiveLotInput entrada para registrar la recepción de un lote.
type ReceiveLotInput struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	ReceivedAt time.Time // cero = ahora
	Source     string    // procedencia: compra, ajuste, carga inicial
}

// ReceiveLotUseCase registra lotes entrantes en el ledger. Es la única vía por
// la que entra inventario; el consumo FIFO luego los agota del más antiguo al
// más reciente.
type ReceiveLotUseCase struct {
	lots      repository.InventoryLotRepository
	products  repository.ProductRepository
	locations repository.LocationRepository
}

// NewReceiveLotUseCase construye el caso de uso.
func NewReceiveLotUseCase(
	lots repository.InventoryLotRepository,
	products repository.ProductRepository,
	locations repository.LocationRepository,
) *ReceiveLotUseCase {
	return &ReceiveLotUseCase{lots: lots, products: products, locations: locations}
}

// ReceiveLot valida y crea el lote. UnitCost y ReceivedAt quedan fijos desde
// aquí: definen el costo y el orden FIFO para siempre.
func (uc *ReceiveLotUseCase) ReceiveLot(ctx context.Context, input ReceiveLotInput) (*entity.InventoryLot, error) {
	if input.ProductID == "" || input.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locations.GetByID(ctx, input.LocationID)
	if err != nil {
		return nil, fmt.Errorf("buscar ubicación: %w", err)
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	receivedAt := input.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}
	lot := &entity.InventoryLot{
		ProductID:  input.ProductID,
		LocationID: input.LocationID,
		Quantity:   input.Quantity,
		UnitCost:   input.UnitCost,
		ReceivedAt: receivedAt,
		Source:     input.Source,
	}
	if err := uc.lots.Create(ctx, lot); err != nil {
		return nil, fmt.Errorf("crear lote: %w", err)
	}
	return lot, nil
}
