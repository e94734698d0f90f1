package repository

import (
	"context"

	"github.com/vendipos/backoffice-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para ubicaciones.
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	// GetByExternalID devuelve (nil, nil) si no existe.
	GetByExternalID(ctx context.Context, externalID string) (*entity.Location, error)
	// GetOrCreateByExternalID crea la ubicación de forma perezosa la primera vez
	// que se observa el external_id (upsert idempotente).
	GetOrCreateByExternalID(ctx context.Context, externalID, name string) (*entity.Location, error)
}
