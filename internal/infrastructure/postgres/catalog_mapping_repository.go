package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

var _ repository.CatalogMappingRepository = (*CatalogMappingRepo)(nil)

// CatalogMappingRepo lectura de mapeos de catálogo sobre PostgreSQL.
// Este core no escribe la tabla; la mantiene el sincronizador de catálogo.
type CatalogMappingRepo struct {
	q Querier
}

// NewCatalogMappingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogMappingRepository(q Querier) *CatalogMappingRepo {
	return &CatalogMappingRepo{q: q}
}

// GetByVariationAndLocation busca el mapeo específico de la ubicación. (nil, nil) si no existe.
func (r *CatalogMappingRepo) GetByVariationAndLocation(ctx context.Context, externalVariationID, locationID string) (*entity.CatalogMapping, error) {
	query := `
		SELECT id, external_variation_id, location_id, product_id, updated_at
		FROM catalog_mappings
		WHERE external_variation_id = $1 AND location_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, externalVariationID, locationID))
}

// GetGlobalByVariation busca el mapeo sin ubicación (fallback global). (nil, nil) si no existe.
func (r *CatalogMappingRepo) GetGlobalByVariation(ctx context.Context, externalVariationID string) (*entity.CatalogMapping, error) {
	query := `
		SELECT id, external_variation_id, location_id, product_id, updated_at
		FROM catalog_mappings
		WHERE external_variation_id = $1 AND location_id IS NULL`
	return r.scanOne(r.q.QueryRow(ctx, query, externalVariationID))
}

func (r *CatalogMappingRepo) scanOne(row pgx.Row) (*entity.CatalogMapping, error) {
	var m entity.CatalogMapping
	err := row.Scan(&m.ID, &m.ExternalVariationID, &m.LocationID, &m.ProductID, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog mapping: %w", err)
	}
	return &m, nil
}
