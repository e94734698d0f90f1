package entity

import "time"

// Product representa un producto interno (SKU). El costo de venta no vive aquí:
// se deriva por consumo FIFO de lotes en inventory_lots.
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
