//go:build integration

package postgres_test

import "github.com/jhoicas/Despachos-api/internal/application/dto"

func outboundRequest(gtin string, qty int) dto.OutboundOrderRequest {
	return dto.OutboundOrderRequest{
		WarehouseID: warehouseID,
		OrderLines:  []dto.OrderLineRequest{{GTIN: gtin, Quantity: qty}},
	}
}
