package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta. El índice único sobre external_payment_id convierte
// la carrera entre workers en domain.ErrDuplicate.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (id, external_payment_id, location_id, created_at, total_revenue, total_cost, gross_profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.ExternalPaymentID, sale.LocationID, sale.CreatedAt,
		sale.TotalRevenue, sale.TotalCost, sale.GrossProfit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// GetByExternalPaymentID busca por la clave de idempotencia. (nil, nil) si no existe.
func (r *SaleRepo) GetByExternalPaymentID(ctx context.Context, externalPaymentID string) (*entity.Sale, error) {
	query := `
		SELECT id, external_payment_id, location_id, created_at, total_revenue, total_cost, gross_profit
		FROM sales WHERE external_payment_id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, externalPaymentID).Scan(
		&s.ID, &s.ExternalPaymentID, &s.LocationID, &s.CreatedAt,
		&s.TotalRevenue, &s.TotalCost, &s.GrossProfit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by payment id: %w", err)
	}
	return &s, nil
}

// UpdateTotals escribe los totales una única vez tras procesar las líneas.
func (r *SaleRepo) UpdateTotals(ctx context.Context, saleID string, revenue, cost, profit decimal.Decimal) error {
	query := `
		UPDATE sales SET total_revenue = $2, total_cost = $3, gross_profit = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, saleID, revenue, cost, profit)
	if err != nil {
		return fmt.Errorf("update sale totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
