package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
)

// countingRepo cuenta las consultas que llegan al repositorio real.
type countingRepo struct {
	byLocation map[string]*entity.CatalogMapping // clave variación|ubicación
	global     map[string]*entity.CatalogMapping
	calls      int
}

func (r *countingRepo) GetByVariationAndLocation(_ context.Context, variationID, locationID string) (*entity.CatalogMapping, error) {
	r.calls++
	return r.byLocation[variationID+"|"+locationID], nil
}

func (r *countingRepo) GetGlobalByVariation(_ context.Context, variationID string) (*entity.CatalogMapping, error) {
	r.calls++
	return r.global[variationID], nil
}

func newCountingRepo() *countingRepo {
	return &countingRepo{
		byLocation: map[string]*entity.CatalogMapping{
			"VAR-1|loc-1": {ID: "m1", ExternalVariationID: "VAR-1", ProductID: "prod-1"},
		},
		global: map[string]*entity.CatalogMapping{
			"VAR-2": {ID: "m2", ExternalVariationID: "VAR-2", ProductID: "prod-2"},
		},
	}
}

// TestCache_AciertoNoRepiteConsulta: la segunda lectura del mismo mapeo sale
// del cache.
func TestCache_AciertoNoRepiteConsulta(t *testing.T) {
	inner := newCountingRepo()
	c := NewCatalogMappingCache(inner, time.Minute)

	m1, err := c.GetByVariationAndLocation(context.Background(), "VAR-1", "loc-1")
	require.NoError(t, err)
	require.NotNil(t, m1)

	m2, err := c.GetByVariationAndLocation(context.Background(), "VAR-1", "loc-1")
	require.NoError(t, err)
	assert.Equal(t, m1.ID, m2.ID)
	assert.Equal(t, 1, inner.calls, "la segunda lectura no debe tocar la base")
}

// TestCache_MissNoSeCachea: un mapeo inexistente se consulta siempre, para que
// un sync reciente sea visible de inmediato.
func TestCache_MissNoSeCachea(t *testing.T) {
	inner := newCountingRepo()
	c := NewCatalogMappingCache(inner, time.Minute)

	m, err := c.GetGlobalByVariation(context.Background(), "VAR-NUEVA")
	require.NoError(t, err)
	assert.Nil(t, m)

	// Aparece el mapeo (corrió el sync) y la siguiente lectura lo ve.
	inner.global["VAR-NUEVA"] = &entity.CatalogMapping{ID: "m3", ExternalVariationID: "VAR-NUEVA", ProductID: "prod-3"}
	m, err = c.GetGlobalByVariation(context.Background(), "VAR-NUEVA")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "m3", m.ID)
}

// TestCache_ExpiraPorTTL: pasado el TTL se vuelve a consultar la base.
func TestCache_ExpiraPorTTL(t *testing.T) {
	inner := newCountingRepo()
	c := NewCatalogMappingCache(inner, time.Minute)

	now := time.Now()
	c.now = func() time.Time { return now }

	_, err := c.GetByVariationAndLocation(context.Background(), "VAR-1", "loc-1")
	require.NoError(t, err)
	require.Equal(t, 1, inner.calls)

	// Dentro del TTL: cache.
	now = now.Add(30 * time.Second)
	_, _ = c.GetByVariationAndLocation(context.Background(), "VAR-1", "loc-1")
	assert.Equal(t, 1, inner.calls)

	// Vencido: vuelve a la base.
	now = now.Add(time.Minute)
	_, _ = c.GetByVariationAndLocation(context.Background(), "VAR-1", "loc-1")
	assert.Equal(t, 2, inner.calls)
}

// TestCache_ScopesNoSeMezclan: el mapeo por ubicación y el global de la misma
// variación usan entradas distintas.
func TestCache_ScopesNoSeMezclan(t *testing.T) {
	inner := newCountingRepo()
	inner.global["VAR-1"] = &entity.CatalogMapping{ID: "m-global", ExternalVariationID: "VAR-1", ProductID: "prod-g"}
	c := NewCatalogMappingCache(inner, time.Minute)

	specific, err := c.GetByVariationAndLocation(context.Background(), "VAR-1", "loc-1")
	require.NoError(t, err)
	global, err := c.GetGlobalByVariation(context.Background(), "VAR-1")
	require.NoError(t, err)

	assert.Equal(t, "m1", specific.ID)
	assert.Equal(t, "m-global", global.ID)
}
