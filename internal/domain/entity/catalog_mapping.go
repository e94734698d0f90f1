package entity

import "time"

// CatalogMapping asocia una variación del catálogo externo con un producto
// interno. LocationID nil significa mapeo global (fallback para cualquier
// ubicación). Esta tabla la escribe el sincronizador de catálogo; este core
// solo la lee.
type CatalogMapping struct {
	ID                  string
	ExternalVariationID string
	LocationID          *string // nil = mapeo global
	ProductID           string
	UpdatedAt           time.Time
}
