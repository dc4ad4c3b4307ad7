package repository

import (
	"context"

	"github.com/jhoicas/Despachos-api/internal/domain/entity"
)

// OutboundOrderRepository persiste las órdenes de salida confirmadas con su plan de carga.
type OutboundOrderRepository interface {
	Create(ctx context.Context, order *entity.OutboundOrder) error
	// GetByID devuelve nil, nil si la orden no existe.
	GetByID(ctx context.Context, id string) (*entity.OutboundOrder, error)
}
