// Package loadplan reparte las líneas de una orden de salida entre vehículos de
// capacidad fija (primer ajuste por orden de apertura, con división de unidades).
//
// El algoritmo es voraz y determinista: procesa las líneas en el orden de la orden,
// cada unidad va al primer vehículo abierto con capacidad restante estrictamente
// mayor al peso de una unidad, y solo se abre un vehículo nuevo cuando ninguno
// admite una unidad más. No busca el mínimo de vehículos.
package loadplan

import (
	"errors"
	"fmt"

	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// GramsPerKilogram factor de conversión entre la unidad interna y la de salida.
const GramsPerKilogram = 1000

var (
	ErrInvalidCapacity     = errors.New("loadplan: la capacidad del vehículo debe ser positiva")
	ErrInvalidUnitWeight   = errors.New("loadplan: el peso unitario no puede ser negativo")
	ErrUnitExceedsCapacity = errors.New("loadplan: el peso unitario excede la capacidad del vehículo")
)

var kilogram = decimal.NewFromInt(GramsPerKilogram)

// ItemError asocia un error del planificador a la línea que lo produjo.
type ItemError struct {
	GTIN            string
	UnitWeightGrams float64
	CapacityGrams   float64
	Err             error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("producto %s: %v (peso unitario %s g, capacidad %s g)",
		e.GTIN, e.Err,
		decimal.NewFromFloat(e.UnitWeightGrams).String(),
		decimal.NewFromFloat(e.CapacityGrams).String(),
	)
}

func (e *ItemError) Unwrap() error { return e.Err }

// Planner planificador de carga con capacidad fija por vehículo (en gramos).
type Planner struct {
	CapacityGrams float64
}

// NewPlanner construye el planificador a partir de la capacidad en kilogramos.
func NewPlanner(capacityKg float64) Planner {
	return Planner{CapacityGrams: capacityKg * GramsPerKilogram}
}

// CapacityKg capacidad por vehículo en kilogramos.
func (p Planner) CapacityKg() float64 {
	return p.CapacityGrams / GramsPerKilogram
}

// vehicle estado de un vehículo durante la planificación. La aritmética de pesos
// es decimal exacta; se convierte a float64 solo al construir el plan.
type vehicle struct {
	number    int
	remaining decimal.Decimal
	loaded    decimal.Decimal
	items     []entity.LoadedItem
}

// Plan reparte items entre vehículos. Falla solo con capacidad no positiva o con una
// línea cuyo peso unitario es negativo o mayor que la capacidad; en ese caso no se
// devuelve plan parcial.
func (p Planner) Plan(items []entity.ResolvedLineItem) (entity.LoadPlan, error) {
	if p.CapacityGrams <= 0 {
		return entity.LoadPlan{}, ErrInvalidCapacity
	}
	capacity := decimal.NewFromFloat(p.CapacityGrams)

	for _, it := range items {
		if err := p.checkItem(it); err != nil {
			return entity.LoadPlan{}, err
		}
	}

	var vehicles []vehicle
	for _, it := range items {
		unit := decimal.NewFromFloat(it.UnitWeightGrams)
		pending := it.Quantity
		for pending > 0 {
			var placed int
			vehicles, placed = loadUnits(vehicles, capacity, it, unit, pending)
			pending -= placed
		}
	}
	return p.build(vehicles), nil
}

func (p Planner) checkItem(it entity.ResolvedLineItem) error {
	switch {
	case it.UnitWeightGrams < 0:
		return &ItemError{GTIN: it.GTIN, UnitWeightGrams: it.UnitWeightGrams, CapacityGrams: p.CapacityGrams, Err: ErrInvalidUnitWeight}
	case it.UnitWeightGrams > p.CapacityGrams:
		return &ItemError{GTIN: it.GTIN, UnitWeightGrams: it.UnitWeightGrams, CapacityGrams: p.CapacityGrams, Err: ErrUnitExceedsCapacity}
	}
	return nil
}

// loadUnits coloca hasta pending unidades de it en el primer vehículo elegible (o en uno
// nuevo al final) y devuelve la lista actualizada junto con las unidades colocadas.
// La lista recibida no se modifica.
func loadUnits(vehicles []vehicle, capacity decimal.Decimal, it entity.ResolvedLineItem, unit decimal.Decimal, pending int) ([]vehicle, int) {
	next := make([]vehicle, len(vehicles), len(vehicles)+1)
	copy(next, vehicles)

	idx := firstFit(next, unit)
	if idx < 0 {
		next = append(next, vehicle{number: len(next) + 1, remaining: capacity, loaded: decimal.Zero})
		idx = len(next) - 1
	}

	v := next[idx]
	n := unitsThatFit(v.remaining, unit, pending)
	weight := unit.Mul(decimal.NewFromInt(int64(n)))

	items := make([]entity.LoadedItem, len(v.items), len(v.items)+1)
	copy(items, v.items)
	items = append(items, entity.LoadedItem{
		ProductID:        it.ProductID,
		GTIN:             it.GTIN,
		Name:             it.Name,
		Quantity:         n,
		TotalWeightGrams: weight.InexactFloat64(),
	})

	next[idx] = vehicle{
		number:    v.number,
		remaining: v.remaining.Sub(weight),
		loaded:    v.loaded.Add(weight),
		items:     items,
	}
	return next, n
}

// firstFit índice del primer vehículo (orden de apertura) con capacidad restante
// estrictamente mayor que una unidad; -1 si ninguno.
func firstFit(vehicles []vehicle, unit decimal.Decimal) int {
	for i := range vehicles {
		if vehicles[i].remaining.GreaterThan(unit) {
			return i
		}
	}
	return -1
}

// unitsThatFit floor(remaining/unit) acotado a pending. Un peso unitario cero no consume capacidad.
func unitsThatFit(remaining, unit decimal.Decimal, pending int) int {
	if unit.IsZero() {
		return pending
	}
	q, _ := remaining.QuoRem(unit, 0)
	if !q.LessThan(decimal.NewFromInt(int64(pending))) {
		return pending
	}
	return int(q.IntPart())
}

func (p Planner) build(vehicles []vehicle) entity.LoadPlan {
	total := decimal.Zero
	out := make([]entity.VehicleLoad, 0, len(vehicles))
	for _, v := range vehicles {
		total = total.Add(v.loaded)
		out = append(out, entity.VehicleLoad{
			TruckNumber:       v.number,
			LoadedWeightGrams: v.loaded.InexactFloat64(),
			Items:             v.items,
		})
	}
	return entity.LoadPlan{
		CapacityGrams: p.CapacityGrams,
		TotalWeightKg: total.Div(kilogram).InexactFloat64(),
		VehicleCount:  len(out),
		Vehicles:      out,
	}
}

// LowerBound cantidad teórica mínima de vehículos: ceil(peso total / capacidad).
// Puede ser menor que la cantidad que produce Plan.
func LowerBound(totalWeightGrams, capacityGrams float64) int {
	if capacityGrams <= 0 || totalWeightGrams <= 0 {
		return 0
	}
	q, r := decimal.NewFromFloat(totalWeightGrams).QuoRem(decimal.NewFromFloat(capacityGrams), 0)
	n := int(q.IntPart())
	if r.IsPositive() {
		n++
	}
	return n
}
