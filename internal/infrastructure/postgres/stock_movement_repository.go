package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo historial de movimientos de stock sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// CreateBatch inserta los movimientos en un solo viaje a la BD.
func (r *StockMovementRepo) CreateBatch(ctx context.Context, movements []*entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	query := `
		INSERT INTO stock_movements (id, transaction_id, product_id, warehouse_id, type, quantity, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	batch := &pgx.Batch{}
	for _, m := range movements {
		batch.Queue(query, m.ID, m.TransactionID, m.ProductID, m.WarehouseID, m.Type, m.Quantity, m.CreatedAt, m.CreatedBy)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range movements {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert stock movement: %w", err)
		}
	}
	return nil
}

// ListByTransaction movimientos de una transacción (orden de salida) en orden de inserción.
func (r *StockMovementRepo) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, product_id, warehouse_id, type, quantity, created_at, created_by
		FROM stock_movements WHERE transaction_id = $1 ORDER BY created_at, product_id`
	rows, err := r.q.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Quantity, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
