package entity

import "time"

// OrderLine línea de una orden de salida tal como llega del cliente.
type OrderLine struct {
	GTIN     string
	Quantity int
}

// ResolvedLineItem línea de la orden unida con su producto del catálogo.
// Solo vive durante el procesamiento de una orden.
type ResolvedLineItem struct {
	ProductID       int64
	GTIN            string
	Name            string
	UnitWeightGrams float64
	Quantity        int
}

// TotalWeightGrams peso total de la línea.
func (li ResolvedLineItem) TotalWeightGrams() float64 {
	return li.UnitWeightGrams * float64(li.Quantity)
}

// OutboundOrder orden de salida confirmada: las líneas resueltas, el plan de carga
// y el stock ya descontado de la bodega.
type OutboundOrder struct {
	ID             string
	WarehouseID    int64
	Lines          []ResolvedLineItem
	Plan           LoadPlan
	NumberOfTrucks int // cota inferior ceil(peso total / capacidad)
	CreatedAt      time.Time
	CreatedBy      string
}

// Alterations devuelve los pares (producto, cantidad) a descontar, en el orden de las líneas.
func (o *OutboundOrder) Alterations() []StockAlteration {
	out := make([]StockAlteration, 0, len(o.Lines))
	for _, li := range o.Lines {
		out = append(out, StockAlteration{ProductID: li.ProductID, Quantity: li.Quantity})
	}
	return out
}
