// Package rabbitmq publica los eventos de despacho en un exchange topic.
package rabbitmq

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Despachos-api/pkg/logger"
)

const (
	ExchangeType = "topic"
	dialAttempts = 5
)

// SetupConn abre la conexión y declara el exchange (durable). Reintenta mientras el broker arranca.
func SetupConn(url, exchange string, log *logger.Logger) (*amqp.Connection, *amqp.Channel, error) {
	var conn *amqp.Connection
	var err error
	for i := 0; i < dialAttempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("intento", i+1).Msg("no se pudo conectar a RabbitMQ")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("conectar a RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("abrir canal: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,     // name
		ExchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declarar exchange %s: %w", exchange, err)
	}
	return conn, ch, nil
}
