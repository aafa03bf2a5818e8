// Package kafka publishes order-changed events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// messageWriter is satisfied by *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderChangedEvent is the message body written for every committed order change.
type OrderChangedEvent struct {
	OrderID    string    `json:"order_id"`
	Number     string    `json:"number"`
	Status     string    `json:"status"`
	Settlement string    `json:"settlement"`
	Archived   bool      `json:"archived"`
	Version    int64     `json:"version"`
	Ordered    string    `json:"ordered"`
	Shipped    string    `json:"shipped"`
	Delivered  string    `json:"delivered"`
	Invoiced   string    `json:"invoiced"`
	Paid       string    `json:"paid"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newOrderChangedEvent(o *order.Order) OrderChangedEvent {
	totals := o.Totals()
	return OrderChangedEvent{
		OrderID:    o.ID().String(),
		Number:     o.Number(),
		Status:     o.Status().String(),
		Settlement: o.Settlement().String(),
		Archived:   o.IsArchived(),
		Version:    o.Version(),
		Ordered:    totals.Ordered.String(),
		Shipped:    totals.Shipped.String(),
		Delivered:  totals.Delivered.String(),
		Invoiced:   totals.Invoiced.String(),
		Paid:       o.Paid().String(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

// Producer implements ports.OrderEventPublisher on top of kafka-go.
type Producer struct {
	w messageWriter
}

// NewProducer creates a synchronous producer. brokers is a comma separated host list.
func NewProducer(brokers, topic string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(brokers, ",")...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func newProducerWithWriter(w messageWriter) *Producer {
	return &Producer{w: w}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// PublishOrderChanged writes one message keyed by order id, so every change of
// an order lands on the same partition in commit order.
func (p *Producer) PublishOrderChanged(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	b, err := json.Marshal(newOrderChangedEvent(o))
	if err != nil {
		return fmt.Errorf("marshal order changed event: %w", err)
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(o.ID().String()),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event-type", Value: []byte("order.changed")},
		},
	})
}

// NoopPublisher discards events. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderChanged(context.Context, *order.Order) error {
	return nil
}
