package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vendipos/backoffice-api/internal/application/sales"
)

// Ensure TxRunner implements sales.TxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es el
// mecanismo de atomicidad del pipeline: lectura de lotes con FOR UPDATE,
// decremento, auditoría y venta comparten la misma tx, y cualquier error hace
// Rollback de todo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback. El ctx del job (con su timeout) acota cuánto tiempo pueden
// sostenerse los bloqueos de fila.
func (r *TxRunner) Run(ctx context.Context, fn func(repos sales.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := sales.TxRepos{
		Lots:         NewInventoryLotRepository(tx),
		Sales:        NewSaleRepository(tx),
		SaleItems:    NewSaleItemRepository(tx),
		Consumptions: NewInventoryConsumptionRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
