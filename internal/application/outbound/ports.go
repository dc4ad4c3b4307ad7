package outbound

import (
	"context"
	"time"

	"github.com/jhoicas/Despachos-api/internal/domain/entity"
	"github.com/jhoicas/Despachos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Es el único punto de confirmación de una orden de salida.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OutboundOrderRepository,
	) error) error
}

// DispatchedEvent se publica después de confirmar una orden de salida.
type DispatchedEvent struct {
	OrderID        string    `json:"orderId"`
	WarehouseID    int64     `json:"warehouseId"`
	Lines          int       `json:"lines"`
	VehicleCount   int       `json:"vehicleCount"`
	NumberOfTrucks int       `json:"numberOfTrucks"`
	TotalWeightKg  float64   `json:"totalWeightKg"`
	CreatedBy      string    `json:"createdBy,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// EventPublisher publica eventos de despacho (RabbitMQ en producción).
type EventPublisher interface {
	PublishDispatched(ctx context.Context, evt DispatchedEvent) error
}

// ManifestGenerator genera el manifiesto de despacho (PDF) de una orden confirmada.
type ManifestGenerator interface {
	GenerateManifest(ctx context.Context, order *entity.OutboundOrder) ([]byte, error)
}

// NopPublisher descarta los eventos; se usa cuando no hay broker configurado.
type NopPublisher struct{}

func (NopPublisher) PublishDispatched(context.Context, DispatchedEvent) error { return nil }
