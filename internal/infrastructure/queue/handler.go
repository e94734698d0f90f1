package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/vendipos/backoffice-api/internal/application/sales"
	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/pkg/logger"
)

// SaleSyncHandler adapta ProcessPaymentUseCase al contrato de la cola:
// deserializa el payload, ejecuta el pipeline y clasifica el error resultante
// en reintentable vs terminal.
type SaleSyncHandler struct {
	uc                        *sales.ProcessPaymentUseCase
	insufficientStockRetryCap int
	log                       *logger.Logger
}

// NewSaleSyncHandler construye el handler.
func NewSaleSyncHandler(uc *sales.ProcessPaymentUseCase, insufficientStockRetryCap int, log *logger.Logger) *SaleSyncHandler {
	return &SaleSyncHandler{
		uc:                        uc,
		insufficientStockRetryCap: insufficientStockRetryCap,
		log:                       log.Component("sale-sync"),
	}
}

// ProcessTask implementa asynq.Handler para TypeProcessSale.
func (h *SaleSyncHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload sales.JobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// Un payload ilegible nunca va a deserializar bien: terminal.
		return fmt.Errorf("payload ilegible: %v: %w", err, asynq.SkipRetry)
	}

	err := h.uc.Process(ctx, payload)
	if err == nil {
		return nil
	}

	retried, _ := asynq.GetRetryCount(ctx)
	classified := Classify(err, retried, h.insufficientStockRetryCap)
	h.logFailure(payload, err, classified, retried)
	return classified
}

// logFailure apunta el fallo con severidad según su clase. La corrupción del
// ledger indica un bug de control de concurrencia y alarma en error; los
// errores no clasificados también, porque van al camino de reintento a ciegas.
func (h *SaleSyncHandler) logFailure(payload sales.JobPayload, cause, classified error, retried int) {
	var corruption *domain.LedgerCorruptionError
	var insufficient *domain.InsufficientStockError

	ev := h.log.Warn()
	switch {
	case errors.As(cause, &corruption):
		ev = h.log.Error()
	case errors.As(cause, &insufficient),
		errors.Is(cause, domain.ErrInvalidInput),
		errors.Is(cause, domain.ErrUnmappedVariation),
		errors.Is(cause, domain.ErrDanglingProduct),
		errors.Is(cause, domain.ErrUpstream):
		// clases conocidas: warn
	default:
		ev = h.log.Error()
	}

	ev = ev.
		Str("external_payment_id", payload.ExternalPaymentID).
		Str("order_reference", payload.OrderReference).
		Int("retried", retried).
		Bool("terminal", IsTerminal(classified)).
		Err(cause)
	if insufficient != nil {
		ev = ev.
			Str("product_id", insufficient.ProductID).
			Str("requested", insufficient.Requested.String()).
			Str("available", insufficient.Available.String()).
			Str("shortage", insufficient.Shortage().String())
	}
	ev.Msg("procesamiento de venta fallido")
}
