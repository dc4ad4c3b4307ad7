package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Despachos-api/internal/domain"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetHeld devuelve el stock disponible de los productos en la bodega. Sin fila = sin registro.
func (r *StockRepo) GetHeld(ctx context.Context, warehouseID int64, productIDs []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT product_id, held
		FROM stock WHERE warehouse_id = $1 AND product_id = ANY($2)`
	rows, err := r.q.Query(ctx, query, warehouseID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get held stock: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var held int
		if err := rows.Scan(&id, &held); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out[id] = held
	}
	return out, rows.Err()
}

// Decrement descuenta cada cantidad solo si alcanza (held >= cantidad). Si alguna fila no
// se actualiza devuelve domain.ErrInsufficientStock; la atomicidad la da la transacción del
// TxRunner, que hace Rollback. Las filas se actualizan ordenadas por producto para que dos
// órdenes concurrentes bloqueen en el mismo orden.
func (r *StockRepo) Decrement(ctx context.Context, warehouseID int64, items []entity.StockAlteration) error {
	if len(items) == 0 {
		return nil
	}
	sorted := make([]entity.StockAlteration, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	query := `
		UPDATE stock SET held = held - $3, updated_at = now()
		WHERE warehouse_id = $1 AND product_id = $2 AND held >= $3`
	batch := &pgx.Batch{}
	for _, it := range sorted {
		batch.Queue(query, warehouseID, it.ProductID, it.Quantity)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()

	for _, it := range sorted {
		tag, err := br.Exec()
		if err != nil {
			if isCheckViolation(err) {
				return domain.ErrInsufficientStock
			}
			return fmt.Errorf("decrement stock product %d: %w", it.ProductID, err)
		}
		if tag.RowsAffected() != 1 {
			return domain.ErrInsufficientStock
		}
	}
	return nil
}

// Set fija la cantidad disponible (seed, ajustes de bodega).
func (r *StockRepo) Set(ctx context.Context, rec entity.StockRecord) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, held, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET held = EXCLUDED.held, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, rec.ProductID, rec.WarehouseID, rec.Held); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
