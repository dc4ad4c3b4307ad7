package entity

import "time"

// StockRecord representa la cantidad disponible de un producto en una bodega.
// El núcleo nunca lo modifica directamente: el descuento se delega al StockLedger.
type StockRecord struct {
	ProductID   int64
	WarehouseID int64
	Held        int
	UpdatedAt   time.Time
}

// StockAlteration par (producto, cantidad) a descontar de una bodega.
type StockAlteration struct {
	ProductID int64
	Quantity  int
}
