package queue

import (
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/vendipos/backoffice-api/internal/domain"
)

// Classify traduce el error del caso de uso a la decisión de la cola:
//
//   - Entrada malformada, variación sin mapeo, producto colgante y corrupción
//     del ledger son terminales: reintentar a ciegas no los arregla, van
//     directo al archivo (dead-letter) para revisión manual.
//   - Stock insuficiente es un fallo de estado de negocio: se reintenta con
//     backoff por si el inventario cambia, pero acotado por cap; después,
//     dead-letter.
//   - Todo lo demás (plataforma de pagos, persistencia, timeouts, errores no
//     clasificados) se trata como transitorio y se reintenta hasta MaxRetry.
func Classify(err error, retried, insufficientStockRetryCap int) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrUnmappedVariation) ||
		errors.Is(err, domain.ErrDanglingProduct) {
		return terminal(err)
	}

	var corruption *domain.LedgerCorruptionError
	if errors.As(err, &corruption) {
		return terminal(err)
	}

	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		if retried >= insufficientStockRetryCap {
			return terminal(err)
		}
		return err
	}

	return err
}

// terminal marca el error para que la cola archive el job sin más reintentos.
func terminal(err error) error {
	return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
}

// IsTerminal informa si Classify decidió archivar el job.
func IsTerminal(err error) bool {
	return errors.Is(err, asynq.SkipRetry)
}
