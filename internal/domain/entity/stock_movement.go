package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida (despacho)
)

// StockMovement registra un cambio de stock de un producto en una bodega.
// TransactionID agrupa los movimientos de una misma orden de salida.
type StockMovement struct {
	ID            string
	TransactionID string
	ProductID     int64
	WarehouseID   int64
	Type          string
	Quantity      int // negativo para salidas
	CreatedAt     time.Time
	CreatedBy     string
}
