package repository

import (
	"context"

	"github.com/jhoicas/Despachos-api/internal/domain/entity"
)

// StockRepository define el puerto del libro de stock por bodega+producto.
type StockRepository interface {
	// GetHeld devuelve la cantidad disponible por productID. Un producto sin registro
	// en la bodega no aparece en el mapa.
	GetHeld(ctx context.Context, warehouseID int64, productIDs []int64) (map[int64]int, error)
	// Decrement descuenta todas las cantidades de forma atómica: si alguna no alcanza,
	// no se descuenta nada y devuelve domain.ErrInsufficientStock.
	Decrement(ctx context.Context, warehouseID int64, items []entity.StockAlteration) error
}
