package sales

import (
	"context"
	"fmt"

	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

// CatalogMapper resuelve una variación del catálogo externo a un producto
// interno. Solo lee: las ubicaciones y los mapeos los crean otros procesos.
type CatalogMapper struct {
	locations repository.LocationRepository
	mappings  repository.CatalogMappingRepository
	products  repository.ProductRepository
}

// NewCatalogMapper construye el mapper.
func NewCatalogMapper(
	locations repository.LocationRepository,
	mappings repository.CatalogMappingRepository,
	products repository.ProductRepository,
) *CatalogMapper {
	return &CatalogMapper{locations: locations, mappings: mappings, products: products}
}

// Resolve busca primero el mapeo específico de la ubicación y si no existe cae
// al mapeo global (sin ubicación). Devuelve:
//   - ErrUnmappedVariation si no hay mapeo alguno (el sync de catálogo aún no corrió);
//   - ErrDanglingProduct si el mapeo apunta a un producto que ya no existe
//     (fallo de integridad de datos, distinto de "aún sin mapear").
func (m *CatalogMapper) Resolve(ctx context.Context, externalVariationID, externalLocationID string) (string, error) {
	location, err := m.locations.GetByExternalID(ctx, externalLocationID)
	if err != nil {
		return "", fmt.Errorf("buscar ubicación %s: %w", externalLocationID, err)
	}
	if location == nil {
		return "", domain.ErrNotFound
	}

	mapping, err := m.mappings.GetByVariationAndLocation(ctx, externalVariationID, location.ID)
	if err != nil {
		return "", fmt.Errorf("buscar mapeo por ubicación: %w", err)
	}
	if mapping == nil {
		mapping, err = m.mappings.GetGlobalByVariation(ctx, externalVariationID)
		if err != nil {
			return "", fmt.Errorf("buscar mapeo global: %w", err)
		}
	}
	if mapping == nil {
		return "", domain.ErrUnmappedVariation
	}

	product, err := m.products.GetByID(ctx, mapping.ProductID)
	if err != nil {
		return "", fmt.Errorf("verificar producto %s: %w", mapping.ProductID, err)
	}
	if product == nil {
		return "", domain.ErrDanglingProduct
	}
	return product.ID, nil
}
