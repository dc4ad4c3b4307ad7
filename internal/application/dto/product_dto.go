package dto

import "time"

// CreateProductRequest entrada para registrar un producto en el catálogo.
type CreateProductRequest struct {
	GTIN            string  `json:"gtin" validate:"required"`
	Name            string  `json:"name" validate:"required,min=1,max=255"`
	Description     string  `json:"description"`
	UnitWeightGrams float64 `json:"unitWeightGrams" validate:"gte=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              int64     `json:"id"`
	GTIN            string    `json:"gtin"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	UnitWeightGrams float64   `json:"unitWeightGrams"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SetStockRequest fija la cantidad disponible de un producto en una bodega.
type SetStockRequest struct {
	WarehouseID int64  `json:"warehouseId" validate:"required"`
	GTIN        string `json:"gtin" validate:"required"`
	Held        int    `json:"held" validate:"gte=0"`
}

// StockResponse stock resultante.
type StockResponse struct {
	WarehouseID int64  `json:"warehouseId"`
	ProductID   int64  `json:"productId"`
	GTIN        string `json:"gtin"`
	Held        int    `json:"held"`
}
