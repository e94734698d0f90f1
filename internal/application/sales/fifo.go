package sales

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
)

// ConsumptionPlanEntry es el consumo planificado sobre un lote concreto.
type ConsumptionPlanEntry struct {
	LotID            string
	Quantity         decimal.Decimal
	UnitCost         decimal.Decimal
	CostContribution decimal.Decimal // Quantity × UnitCost, sin redondeo
}

// ConsumptionPlan es el resultado del motor de costeo FIFO: de qué lotes
// consumir, cuánto de cada uno y el costo total exacto de la venta.
type ConsumptionPlan struct {
	Entries   []ConsumptionPlanEntry
	TotalCost decimal.Decimal
}

// PlanConsumption recorre los lotes del más antiguo al más reciente (por
// ReceivedAt, con ID como desempate determinista) consumiendo de cada uno
// min(restante, pendiente) hasta cubrir la cantidad solicitada.
//
// Si los lotes se agotan antes de cubrirla devuelve InsufficientStockError y
// ningún plan: el caller no debe aplicar consumo parcial alguno.
//
// La aritmética es decimal exacta; las contribuciones se suman sin redondear.
func PlanConsumption(productID, locationID string, requested decimal.Decimal, lots []*entity.InventoryLot) (*ConsumptionPlan, error) {
	if !requested.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	// El orden FIFO lo define received_at, nunca el orden de inserción.
	ordered := make([]*entity.InventoryLot, len(lots))
	copy(ordered, lots)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ReceivedAt.Equal(ordered[j].ReceivedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].ReceivedAt.Before(ordered[j].ReceivedAt)
	})

	plan := &ConsumptionPlan{TotalCost: decimal.Zero}
	remaining := requested
	available := decimal.Zero

	for _, lot := range ordered {
		if !lot.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		available = available.Add(lot.Quantity)
		if !remaining.GreaterThan(decimal.Zero) {
			continue
		}

		take := decimal.Min(lot.Quantity, remaining)
		contribution := take.Mul(lot.UnitCost)
		plan.Entries = append(plan.Entries, ConsumptionPlanEntry{
			LotID:            lot.ID,
			Quantity:         take,
			UnitCost:         lot.UnitCost,
			CostContribution: contribution,
		})
		plan.TotalCost = plan.TotalCost.Add(contribution)
		remaining = remaining.Sub(take)
	}

	if remaining.GreaterThan(decimal.Zero) {
		return nil, &domain.InsufficientStockError{
			ProductID:  productID,
			LocationID: locationID,
			Requested:  requested,
			Available:  available,
		}
	}
	return plan, nil
}
