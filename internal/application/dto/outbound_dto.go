package dto

import "time"

// OrderLineRequest línea de una orden de salida.
type OrderLineRequest struct {
	GTIN     string `json:"gtin" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// OutboundOrderRequest body para POST /api/orders/outbound.
type OutboundOrderRequest struct {
	WarehouseID int64              `json:"warehouseId" validate:"required"`
	OrderLines  []OrderLineRequest `json:"orderLines" validate:"required,min=1,dive"`
}

// LoadedItemResponse cantidad de un producto cargada en un camión.
type LoadedItemResponse struct {
	ProductID     int64   `json:"productId"`
	GTIN          string  `json:"gtin"`
	ProductName   string  `json:"productName"`
	Quantity      int     `json:"quantity"`
	TotalWeightKg float64 `json:"totalWeightKg"`
}

// TruckResponse carga de un camión del plan.
type TruckResponse struct {
	TruckNumber    int                  `json:"truckNumber"`
	LoadedWeightKg float64              `json:"loadedWeightKg"`
	Items          []LoadedItemResponse `json:"items"`
}

// OutboundOrderResponse salida de una orden de salida confirmada.
// NumberOfTrucks es la cota inferior ceil(peso/capacidad); VehicleCount es la cantidad real del plan.
type OutboundOrderResponse struct {
	OrderID            string          `json:"orderId"`
	WarehouseID        int64           `json:"warehouseId"`
	TotalOrderWeightKg float64         `json:"totalOrderWeightKg"`
	NumberOfTrucks     int             `json:"numberOfTrucks"`
	VehicleCount       int             `json:"vehicleCount"`
	Vehicles           []TruckResponse `json:"vehicles"`
	CreatedAt          time.Time       `json:"createdAt"`
}
