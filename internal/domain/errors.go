package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrUnmappedVariation = errors.New("variación sin mapeo de catálogo")
	ErrDanglingProduct   = errors.New("el mapeo referencia un producto que ya no existe")
	ErrUpstream          = errors.New("error consultando la plataforma de pagos")
)

// InsufficientStockError indica que los lotes disponibles no alcanzan para la
// cantidad solicitada. El caller NO debe aplicar ningún consumo parcial.
type InsufficientStockError struct {
	ProductID  string
	LocationID string
	Requested  decimal.Decimal
	Available  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s en ubicación %s: solicitado %s, disponible %s (faltan %s)",
		e.ProductID, e.LocationID, e.Requested, e.Available, e.Shortage())
}

// Shortage devuelve cuánto falta para cubrir la cantidad solicitada.
func (e *InsufficientStockError) Shortage() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// LedgerCorruptionError indica que un decremento dejaría un lote en negativo.
// Es inalcanzable si la lectura de lotes y el decremento comparten transacción
// con bloqueo de fila; si ocurre, hay un fallo de control de concurrencia.
type LedgerCorruptionError struct {
	LotID     string
	Requested decimal.Decimal
}

func (e *LedgerCorruptionError) Error() string {
	return fmt.Sprintf("corrupción del ledger: el lote %s no admite decremento de %s", e.LotID, e.Requested)
}
