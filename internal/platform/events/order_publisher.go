// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"storefront_backend/internal/feature/orders/domain/entity"
	"storefront_backend/internal/feature/orders/usecase"
)

const eventTypeOrderCreated = "order.created"

// orderEvent is the envelope written to the orders topic.
type orderEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	OrderID   uint            `json:"order_id"`
	UserID    uint            `json:"user_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// KafkaPublisher writes order events to a Kafka topic. Publishing is
// best-effort from the caller's perspective; a lost event never fails the
// order itself.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds a publisher from KAFKA_BROKERS (comma separated)
// and KAFKA_ORDERS_TOPIC. Returns nil when no brokers are configured, which
// callers treat as events disabled.
func NewKafkaPublisher() *KafkaPublisher {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}
	topic := os.Getenv("KAFKA_ORDERS_TOPIC")
	if topic == "" {
		topic = "storefront.orders"
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer}
}

// PublishOrderCreated announces a newly placed order.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *entity.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	event := orderEvent{
		ID:        uuid.NewString(),
		Type:      eventTypeOrderCreated,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.ID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	slog.Debug("order event published", "type", event.Type, "order_id", order.ID)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Compile-time interface check
var _ usecase.OrderEventPublisher = (*KafkaPublisher)(nil)
