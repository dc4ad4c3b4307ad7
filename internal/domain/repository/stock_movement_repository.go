package repository

import (
	"context"

	"github.com/jhoicas/Despachos-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del historial de movimientos.
type StockMovementRepository interface {
	CreateBatch(ctx context.Context, movements []*entity.StockMovement) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*entity.StockMovement, error)
}
