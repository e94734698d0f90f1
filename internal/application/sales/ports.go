package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Lots         repository.InventoryLotRepository
	Sales        repository.SaleRepository
	SaleItems    repository.SaleItemRepository
	Consumptions repository.InventoryConsumptionRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del pipeline de venta:
// lectura de lotes, decremento, auditoría y creación de venta/líneas, o todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// Order es el detalle de una orden consultado a la plataforma de pagos.
type Order struct {
	ReferenceID string
	CreatedAt   time.Time
	Lines       []OrderLine
}

// OrderLine es una línea de la orden tal como la reporta la plataforma:
// referencia de catálogo, cantidad y precio total de esa cantidad.
type OrderLine struct {
	ExternalVariationID string
	Quantity            decimal.Decimal
	TotalPrice          decimal.Decimal
}

// OrderFetcher consulta el detalle de una orden en la plataforma de pagos.
// Los fallos de red o de la plataforma se reportan envolviendo domain.ErrUpstream.
type OrderFetcher interface {
	FetchOrder(ctx context.Context, orderReference string) (*Order, error)
}
