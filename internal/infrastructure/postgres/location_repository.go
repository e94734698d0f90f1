package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	return r.getBy(ctx, "id", id)
}

// GetByExternalID obtiene una ubicación por su id externo. (nil, nil) si no existe.
func (r *LocationRepo) GetByExternalID(ctx context.Context, externalID string) (*entity.Location, error) {
	return r.getBy(ctx, "external_id", externalID)
}

func (r *LocationRepo) getBy(ctx context.Context, column, value string) (*entity.Location, error) {
	query := fmt.Sprintf(`
		SELECT id, external_id, name, created_at
		FROM locations WHERE %s = $1`, column)
	var l entity.Location
	err := r.q.QueryRow(ctx, query, value).Scan(&l.ID, &l.ExternalID, &l.Name, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by %s: %w", column, err)
	}
	return &l, nil
}

// GetOrCreateByExternalID crea la ubicación si no existe (upsert idempotente
// sobre el índice único de external_id) y devuelve la fila vigente.
func (r *LocationRepo) GetOrCreateByExternalID(ctx context.Context, externalID, name string) (*entity.Location, error) {
	query := `
		INSERT INTO locations (id, external_id, name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id) DO UPDATE SET external_id = EXCLUDED.external_id
		RETURNING id, external_id, name, created_at`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, uuid.New().String(), externalID, name, time.Now()).Scan(
		&l.ID, &l.ExternalID, &l.Name, &l.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get or create location: %w", err)
	}
	return &l, nil
}
