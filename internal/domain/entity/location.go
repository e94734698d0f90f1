package entity

import "time"

// Location representa un punto de venta físico. Se crea de forma perezosa la
// primera vez que llega un evento con un external_id desconocido.
type Location struct {
	ID         string
	ExternalID string // id de la ubicación en la plataforma de pagos
	Name       string
	CreatedAt  time.Time
}
