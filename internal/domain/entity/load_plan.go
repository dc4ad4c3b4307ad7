package entity

// LoadedItem cantidad de un producto cargada en un vehículo. Un producto puede
// aparecer en varios vehículos cuando su cantidad se reparte.
type LoadedItem struct {
	ProductID        int64
	GTIN             string
	Name             string
	Quantity         int
	TotalWeightGrams float64
}

// VehicleLoad carga de un vehículo. TruckNumber empieza en 1 y sigue el orden de apertura.
type VehicleLoad struct {
	TruckNumber       int
	LoadedWeightGrams float64
	Items             []LoadedItem
}

// LoadPlan resultado del planificador de carga.
type LoadPlan struct {
	CapacityGrams float64
	TotalWeightKg float64
	VehicleCount  int
	Vehicles      []VehicleLoad
}

// QuantityByProduct suma las unidades cargadas por producto en todos los vehículos.
func (p LoadPlan) QuantityByProduct() map[int64]int {
	out := make(map[int64]int)
	for _, v := range p.Vehicles {
		for _, it := range v.Items {
			out[it.ProductID] += it.Quantity
		}
	}
	return out
}
