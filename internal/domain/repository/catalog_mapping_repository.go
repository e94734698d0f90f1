package repository

import (
	"context"

	"github.com/vendipos/backoffice-api/internal/domain/entity"
)

// CatalogMappingRepository define el puerto de lectura de mapeos de catálogo.
// La tabla la escribe el sincronizador externo; este core nunca la modifica.
type CatalogMappingRepository interface {
	// GetByVariationAndLocation devuelve el mapeo específico de la ubicación,
	// (nil, nil) si no existe.
	GetByVariationAndLocation(ctx context.Context, externalVariationID, locationID string) (*entity.CatalogMapping, error)
	// GetGlobalByVariation devuelve el mapeo sin ubicación (fallback global),
	// (nil, nil) si no existe.
	GetGlobalByVariation(ctx context.Context, externalVariationID string) (*entity.CatalogMapping, error)
}
