package outbound

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Despachos-api/internal/application/dto"
	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/loadplan"
)

var gramsPerKg = decimal.NewFromInt(loadplan.GramsPerKilogram)

// TotalWeightGrams suma exacta de peso unitario × cantidad de las líneas.
func TotalWeightGrams(items []entity.ResolvedLineItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.UnitWeightGrams).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.InexactFloat64()
}

// NumberOfTrucks cota inferior ceil(peso total / capacidad) para las líneas.
func NumberOfTrucks(items []entity.ResolvedLineItem, capacityGrams float64) int {
	return loadplan.LowerBound(TotalWeightGrams(items), capacityGrams)
}

// Assemble arma la respuesta de una orden confirmada. No modifica la orden.
func Assemble(order *entity.OutboundOrder) *dto.OutboundOrderResponse {
	vehicles := make([]dto.TruckResponse, 0, len(order.Plan.Vehicles))
	for _, v := range order.Plan.Vehicles {
		items := make([]dto.LoadedItemResponse, 0, len(v.Items))
		for _, it := range v.Items {
			items = append(items, dto.LoadedItemResponse{
				ProductID:     it.ProductID,
				GTIN:          it.GTIN,
				ProductName:   it.Name,
				Quantity:      it.Quantity,
				TotalWeightKg: toKg(it.TotalWeightGrams),
			})
		}
		vehicles = append(vehicles, dto.TruckResponse{
			TruckNumber:    v.TruckNumber,
			LoadedWeightKg: toKg(v.LoadedWeightGrams),
			Items:          items,
		})
	}

	return &dto.OutboundOrderResponse{
		OrderID:            order.ID,
		WarehouseID:        order.WarehouseID,
		TotalOrderWeightKg: toKg(TotalWeightGrams(order.Lines)),
		NumberOfTrucks:     order.NumberOfTrucks,
		VehicleCount:       len(vehicles),
		Vehicles:           vehicles,
		CreatedAt:          order.CreatedAt,
	}
}

func toKg(grams float64) float64 {
	return decimal.NewFromFloat(grams).Div(gramsPerKg).InexactFloat64()
}
