// Package events publishes stock movement events to RabbitMQ. Publishing is
// best-effort: a broker outage must never fail an order.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	invtypes "github.com/vibecart/scm-service/internal/domains/inventory/application/types"
	"github.com/vibecart/scm-service/internal/domains/orders/ports"
	"github.com/vibecart/scm-service/internal/platform/rabbitmq"
)

const (
	StockReservedRoutingKey = "stock.reserved.v1"
	StockRevertedRoutingKey = "stock.reverted.v1"

	eventTypeStockReserved = "StockReserved"
	eventTypeStockReverted = "StockReverted"

	producerName   = "scm-service"
	publishTimeout = 3 * time.Second
)

type stockEvent struct {
	EventID     string      `json:"eventId"`
	EventType   string      `json:"eventType"`
	Producer    string      `json:"producer"`
	OrderID     string      `json:"orderId"`
	CustomerZip int64       `json:"customerZip"`
	Lines       []stockLine `json:"lines"`
	OccurredAt  time.Time   `json:"occurredAt"`
}

type stockLine struct {
	SKU      int64 `json:"sku"`
	Quantity int   `json:"quantity"`
}

// Publisher emits stock events on the scm.events topic exchange.
type Publisher struct {
	ch     *amqp.Channel
	logger *slog.Logger
	now    func() time.Time
}

// NewPublisher opens a channel on the connection and declares the exchange.
func NewPublisher(conn *amqp.Connection, logger *slog.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := rabbitmq.DeclareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &Publisher{ch: ch, logger: logger, now: time.Now}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) StockReserved(ctx context.Context, orderID string, customerZip int64, lines []invtypes.DemandLine) {
	p.publish(ctx, StockReservedRoutingKey, eventTypeStockReserved, orderID, customerZip, lines)
}

func (p *Publisher) StockReverted(ctx context.Context, orderID string, customerZip int64, lines []invtypes.DemandLine) {
	p.publish(ctx, StockRevertedRoutingKey, eventTypeStockReverted, orderID, customerZip, lines)
}

func (p *Publisher) publish(ctx context.Context, routingKey, eventType, orderID string, customerZip int64, lines []invtypes.DemandLine) {
	event := stockEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		Producer:    producerName,
		OrderID:     orderID,
		CustomerZip: customerZip,
		OccurredAt:  p.now().UTC(),
	}
	for _, line := range lines {
		event.Lines = append(event.Lines, stockLine{SKU: line.SKU, Quantity: line.Quantity})
	}
	body, err := json.Marshal(event)
	if err != nil {
		p.logError(ctx, eventType, orderID, err)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	err = p.ch.PublishWithContext(
		pubCtx,
		rabbitmq.EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.logError(ctx, eventType, orderID, err)
	}
}

func (p *Publisher) logError(ctx context.Context, eventType, orderID string, err error) {
	if p.logger == nil {
		return
	}
	p.logger.LogAttrs(ctx, slog.LevelWarn, "stock event publish failed",
		slog.String("event_type", eventType),
		slog.String("order_id", orderID),
		slog.String("error", err.Error()))
}

var _ ports.StockEventPublisher = (*Publisher)(nil)
