package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/vendipos/backoffice-api/internal/domain"
	"github.com/vendipos/backoffice-api/internal/domain/entity"
	"github.com/vendipos/backoffice-api/internal/domain/repository"
)

var _ repository.InventoryLotRepository = (*InventoryLotRepo)(nil)

// InventoryLotRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryLotRepo struct {
	q Querier
}

// NewInventoryLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLotRepository(q Querier) *InventoryLotRepo {
	return &InventoryLotRepo{q: q}
}

// Create persiste un lote recibido.
func (r *InventoryLotRepo) Create(ctx context.Context, lot *entity.InventoryLot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	if lot.CreatedAt.IsZero() {
		lot.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO inventory_lots (id, product_id, location_id, quantity, unit_cost, received_at, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.ProductID, lot.LocationID, lot.Quantity, lot.UnitCost, lot.ReceivedAt, lot.Source, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *InventoryLotRepo) GetByID(ctx context.Context, id string) (*entity.InventoryLot, error) {
	query := `
		SELECT id, product_id, location_id, quantity, unit_cost, received_at, source, created_at
		FROM inventory_lots WHERE id = $1`
	var l entity.InventoryLot
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.ProductID, &l.LocationID, &l.Quantity, &l.UnitCost, &l.ReceivedAt, &l.Source, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// ListAvailable lista los lotes con cantidad > 0 en orden FIFO (received_at
// ascendente, id como desempate). Solo lectura.
func (r *InventoryLotRepo) ListAvailable(ctx context.Context, productID, locationID string) ([]*entity.InventoryLot, error) {
	return r.listAvailable(ctx, productID, locationID, false)
}

// ListAvailableForUpdate es la lectura FIFO con bloqueo de fila (SELECT FOR
// UPDATE): dos ventas concurrentes del mismo producto/ubicación se serializan
// sobre estas filas y ninguna puede sobre-consumir la cantidad disponible.
func (r *InventoryLotRepo) ListAvailableForUpdate(ctx context.Context, productID, locationID string) ([]*entity.InventoryLot, error) {
	return r.listAvailable(ctx, productID, locationID, true)
}

func (r *InventoryLotRepo) listAvailable(ctx context.Context, productID, locationID string, forUpdate bool) ([]*entity.InventoryLot, error) {
	query := `
		SELECT id, product_id, location_id, quantity, unit_cost, received_at, source, created_at
		FROM inventory_lots
		WHERE product_id = $1 AND location_id = $2 AND quantity > 0
		ORDER BY received_at, id`
	if forUpdate {
		query += " FOR UPDATE"
	}
	rows, err := r.q.Query(ctx, query, productID, locationID)
	if err != nil {
		return nil, fmt.Errorf("list available lots: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryLot
	for rows.Next() {
		var l entity.InventoryLot
		if err := rows.Scan(&l.ID, &l.ProductID, &l.LocationID, &l.Quantity, &l.UnitCost, &l.ReceivedAt, &l.Source, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Deduct decrementa la cantidad restante del lote. La guarda quantity >= $2 en
// el UPDATE hace imposible dejar el lote en negativo: si no afecta filas, la
// lectura bloqueada previa fue violada y eso es corrupción del ledger, no un
// error de negocio.
func (r *InventoryLotRepo) Deduct(ctx context.Context, lotID string, quantity decimal.Decimal) error {
	query := `
		UPDATE inventory_lots
		SET quantity = quantity - $2
		WHERE id = $1 AND quantity >= $2`
	tag, err := r.q.Exec(ctx, query, lotID, quantity)
	if err != nil {
		return fmt.Errorf("deduct lot %s: %w", lotID, err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.LedgerCorruptionError{LotID: lotID, Requested: quantity}
	}
	return nil
}
