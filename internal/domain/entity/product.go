package entity

import "time"

// Product representa un producto del catálogo identificado por su GTIN.
// UnitWeightGrams es el peso de una unidad en gramos (unidad canónica interna).
type Product struct {
	ID              int64
	GTIN            string
	Name            string
	Description     string
	UnitWeightGrams float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
