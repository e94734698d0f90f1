package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/vendipos/backoffice-api/internal/application/sales"
)

// Tipos de task y colas. El registro tipo→handler se arma en Server.Register.
const (
	TypeProcessSale = "sale:process"

	QueueSales = "sales"
)

// NewProcessSaleTask serializa el payload del job de procesamiento de venta.
func NewProcessSaleTask(payload sales.JobPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serializar payload: %w", err)
	}
	return asynq.NewTask(TypeProcessSale, data), nil
}
