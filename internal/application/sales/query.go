package sales

import (
	"context"
	"fmt"

	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

// SaleWithAudit es una venta con sus líneas y, por línea, las filas de consumo
// que reconstruyen de qué lotes salió su costo.
type SaleWithAudit struct {
	Sale  *entity.Sale
	Items []SaleItemWithAudit
}

// SaleItemWithAudit es una línea con su rastro de consumos.
type SaleItemWithAudit struct {
	Item         *entity.SaleItem
	Consumptions []*entity.InventoryConsumption
}

// SaleQueryUseCase arma la vista de auditoría de una venta para el API de operación.
type SaleQueryUseCase struct {
	sales        repository.SaleRepository
	items        repository.SaleItemRepository
	consumptions repository.InventoryConsumptionRepository
}

// NewSaleQueryUseCase construye el caso de uso de consulta.
func NewSaleQueryUseCase(
	sales repository.SaleRepository,
	items repository.SaleItemRepository,
	consumptions repository.InventoryConsumptionRepository,
) *SaleQueryUseCase {
	return &SaleQueryUseCase{sales: sales, items: items, consumptions: consumptions}
}

// GetByExternalPaymentID devuelve la venta con su rastro completo de auditoría.
func (uc *SaleQueryUseCase) GetByExternalPaymentID(ctx context.Context, externalPaymentID string) (*SaleWithAudit, error) {
	sale, err := uc.sales.GetByExternalPaymentID(ctx, externalPaymentID)
	if err != nil {
		return nil, fmt.Errorf("buscar venta: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	items, err := uc.items.ListBySale(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas: %w", err)
	}

	result := &SaleWithAudit{Sale: sale, Items: make([]SaleItemWithAudit, 0, len(items))}
	for _, item := range items {
		cons, err := uc.consumptions.ListBySaleItem(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("listar consumos de línea %s: %w", item.ID, err)
		}
		result.Items = append(result.Items, SaleItemWithAudit{Item: item, Consumptions: cons})
	}
	return result, nil
}
