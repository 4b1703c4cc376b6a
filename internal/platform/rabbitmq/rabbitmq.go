// Package rabbitmq dials the broker used for domain event publishing.
package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventsExchange is the topic exchange carrying stock movement events.
const EventsExchange = "scm.events"

// Connect dials the broker and declares the events exchange.
func Connect(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dialing rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}
	defer ch.Close()
	if err := DeclareEventsExchange(ch); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declaring events exchange: %w", err)
	}
	return conn, nil
}

// DeclareEventsExchange declares the durable topic exchange for domain events.
func DeclareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
