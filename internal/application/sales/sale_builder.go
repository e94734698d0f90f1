package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
)

// SaleBuilder construye el agregado de venta dentro de una transacción:
// crea la venta, agrega líneas (costeo FIFO → decremento del ledger → auditoría)
// y escribe los totales una única vez en Finalize.
//
// Debe usarse con los repositorios de una misma tx (TxRunner.Run).
type SaleBuilder struct {
	repos TxRepos

	sale         *entity.Sale
	totalRevenue decimal.Decimal
	totalCost    decimal.Decimal
}

// NewSaleBuilder construye el builder sobre los repos de la transacción actual.
func NewSaleBuilder(repos TxRepos) *SaleBuilder {
	return &SaleBuilder{
		repos:        repos,
		totalRevenue: decimal.Zero,
		totalCost:    decimal.Zero,
	}
}

// CreateSale inserta la venta con totales en cero. El índice único sobre
// external_payment_id hace que una carrera con otro worker termine en
// domain.ErrDuplicate, que el caller trata como no-op idempotente.
func (b *SaleBuilder) CreateSale(ctx context.Context, externalPaymentID, locationID string, createdAt time.Time) (*entity.Sale, error) {
	sale := &entity.Sale{
		ExternalPaymentID: externalPaymentID,
		LocationID:        locationID,
		CreatedAt:         createdAt,
		TotalRevenue:      decimal.Zero,
		TotalCost:         decimal.Zero,
		GrossProfit:       decimal.Zero,
	}
	if err := b.repos.Sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	b.sale = sale
	return sale, nil
}

// AddItem agrega una línea: lee los lotes elegibles con bloqueo de fila,
// planifica el consumo FIFO, decrementa cada lote, apunta una fila de auditoría
// por (línea, lote) y crea el SaleItem con su costo inmutable.
//
// El ingreso de la venta se acumula desde totalPrice (el total que la plataforma
// reporta para la línea), no desde unitPrice × quantity: cuando el total no es
// divisible por la cantidad, el precio unitario derivado es una aproximación y
// recomputar con él distorsionaría lo efectivamente cobrado.
func (b *SaleBuilder) AddItem(ctx context.Context, productID string, quantity, unitPrice, totalPrice decimal.Decimal) (*entity.SaleItem, error) {
	lots, err := b.repos.Lots.ListAvailableForUpdate(ctx, productID, b.sale.LocationID)
	if err != nil {
		return nil, fmt.Errorf("leer lotes disponibles: %w", err)
	}

	plan, err := PlanConsumption(productID, b.sale.LocationID, quantity, lots)
	if err != nil {
		return nil, err
	}

	item := &entity.SaleItem{
		SaleID:    b.sale.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Cost:      plan.TotalCost,
	}
	if err := b.repos.SaleItems.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("crear línea de venta: %w", err)
	}

	now := time.Now()
	for _, e := range plan.Entries {
		if err := b.repos.Lots.Deduct(ctx, e.LotID, e.Quantity); err != nil {
			return nil, err
		}
		consumption := &entity.InventoryConsumption{
			InventoryLotID: e.LotID,
			SaleItemID:     item.ID,
			Quantity:       e.Quantity,
			UnitCost:       e.UnitCost,
			TotalCost:      e.CostContribution,
			ConsumedAt:     now,
		}
		if err := b.repos.Consumptions.Create(ctx, consumption); err != nil {
			return nil, fmt.Errorf("registrar consumo de lote %s: %w", e.LotID, err)
		}
	}

	b.totalRevenue = b.totalRevenue.Add(totalPrice)
	b.totalCost = b.totalCost.Add(plan.TotalCost)
	return item, nil
}

// Finalize escribe los totales acumulados. Es la única escritura sobre la venta
// después de su creación; no vuelve a ejecutarse ni a recalcularse.
func (b *SaleBuilder) Finalize(ctx context.Context) error {
	profit := b.totalRevenue.Sub(b.totalCost)
	if err := b.repos.Sales.UpdateTotals(ctx, b.sale.ID, b.totalRevenue, b.totalCost, profit); err != nil {
		return fmt.Errorf("escribir totales de venta: %w", err)
	}
	b.sale.TotalRevenue = b.totalRevenue
	b.sale.TotalCost = b.totalCost
	b.sale.GrossProfit = profit
	return nil
}
