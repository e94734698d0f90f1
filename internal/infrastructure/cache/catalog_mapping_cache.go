package cache

import (
	"context"
	"sync"
	"time"

	"github.com/vendipos/backoffice-api/internal/domain/entity"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

// CatalogMappingCache decora el repositorio de mapeos de catálogo con un cache
// en memoria con TTL. Los mapeos cambian poco (los escribe el sincronizador de
// catálogo) y cada venta los consulta por línea, así que el hit rate es alto.
// Solo se cachean aciertos: un miss vuelve siempre a la base, para que un mapeo
// recién sincronizado sea visible de inmediato.
type CatalogMappingCache struct {
	inner repository.CatalogMappingRepository
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	mapping  *entity.CatalogMapping
	expireAt time.Time
}

// NewCatalogMappingCache crea el decorador con el TTL indicado.
func NewCatalogMappingCache(inner repository.CatalogMappingRepository, ttl time.Duration) *CatalogMappingCache {
	return &CatalogMappingCache{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

var _ repository.CatalogMappingRepository = (*CatalogMappingCache)(nil)

// GetByVariationAndLocation implementa repository.CatalogMappingRepository.
func (c *CatalogMappingCache) GetByVariationAndLocation(ctx context.Context, externalVariationID, locationID string) (*entity.CatalogMapping, error) {
	key := externalVariationID + "|" + locationID
	if m, ok := c.get(key); ok {
		return m, nil
	}
	m, err := c.inner.GetByVariationAndLocation(ctx, externalVariationID, locationID)
	if err != nil {
		return nil, err
	}
	if m != nil {
		c.put(key, m)
	}
	return m, nil
}

// GetGlobalByVariation implementa repository.CatalogMappingRepository.
func (c *CatalogMappingCache) GetGlobalByVariation(ctx context.Context, externalVariationID string) (*entity.CatalogMapping, error) {
	key := externalVariationID + "|"
	if m, ok := c.get(key); ok {
		return m, nil
	}
	m, err := c.inner.GetGlobalByVariation(ctx, externalVariationID)
	if err != nil {
		return nil, err
	}
	if m != nil {
		c.put(key, m)
	}
	return m, nil
}

func (c *CatalogMappingCache) get(key string) (*entity.CatalogMapping, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expireAt) {
		return nil, false
	}
	return e.mapping, true
}

func (c *CatalogMappingCache) put(key string, m *entity.CatalogMapping) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{mapping: m, expireAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
