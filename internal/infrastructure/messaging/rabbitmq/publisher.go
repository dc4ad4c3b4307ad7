package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Despachos-api/internal/application/outbound"
)

// RoutingKeyDispatched prefijo de la routing key; se completa con el id de la bodega.
const RoutingKeyDispatched = "outbound.dispatched"

// Channel lo que el publicador usa de *amqp.Channel.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

var _ outbound.EventPublisher = (*Publisher)(nil)

// Publisher publica outbound.dispatched.<warehouseId>. Un canal AMQP no admite publicaciones concurrentes.
type Publisher struct {
	mu       sync.Mutex
	ch       Channel
	exchange string
}

// NewPublisher construye el publicador sobre un canal ya abierto.
func NewPublisher(ch Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

// PublishDispatched serializa el evento en JSON y lo publica como persistente.
func (p *Publisher) PublishDispatched(ctx context.Context, evt outbound.DispatchedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	routingKey := fmt.Sprintf("%s.%d", RoutingKeyDispatched, evt.WarehouseID)

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    evt.OrderID,
			Timestamp:    evt.OccurredAt,
			Type:         RoutingKeyDispatched,
			Body:         body,
		},
	)
}
