package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/vendipos/backoffice-api/internal/application/sales"
	"github.com/vendipos/backoffice-api/pkg/config"
)

// Enqueuer publica jobs de procesamiento de venta en la cola durable.
// El TaskID es el external_payment_id: encolar dos veces la misma clave no
// crea dos jobs (contrato de encolado idempotente del receptor de webhooks).
type Enqueuer struct {
	client *asynq.Client
	cfg    config.QueueConfig
}

// NewEnqueuer construye el cliente de encolado sobre Redis.
func NewEnqueuer(redis config.RedisConfig, cfg config.QueueConfig) *Enqueuer {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redis.Addr,
		Password: redis.Password,
		DB:       redis.DB,
	})
	return &Enqueuer{client: client, cfg: cfg}
}

// EnqueueProcessSale encola el job. Devuelve enqueued=false (sin error) si ya
// existe un job con la misma clave: la entrega repetida del webhook es normal.
func (e *Enqueuer) EnqueueProcessSale(ctx context.Context, payload sales.JobPayload) (enqueued bool, err error) {
	task, err := NewProcessSaleTask(payload)
	if err != nil {
		return false, err
	}
	_, err = e.client.EnqueueContext(ctx, task,
		asynq.TaskID(payload.ExternalPaymentID),
		asynq.Queue(QueueSales),
		asynq.MaxRetry(e.cfg.MaxRetries),
		asynq.Timeout(e.cfg.JobTimeout),
		asynq.Retention(e.cfg.Retention),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return false, nil
		}
		return false, fmt.Errorf("encolar job %s: %w", payload.ExternalPaymentID, err)
	}
	return true, nil
}

// Close cierra la conexión con el broker.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}
