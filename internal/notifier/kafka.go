package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/bounteous/ecom/internal/domain"
)

const eventOrderConfirmed = "order.confirmed"

// orderConfirmedEvent is the wire envelope published for each checkout.
type orderConfirmedEvent struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	OrderID       int64     `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerID    int64     `json:"customer_id"`
	CustomerEmail string    `json:"customer_email"`
	Total         string    `json:"total"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

type KafkaNotifier struct {
	writer *kafka.Writer
}

// NewKafka builds a notifier publishing to the given topic. brokersCSV is a
// comma-separated broker list; an empty list yields a disabled notifier.
func NewKafka(brokersCSV, topic string) *KafkaNotifier {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	if len(brokers) == 0 {
		return &KafkaNotifier{}
	}

	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (n *KafkaNotifier) Enabled() bool {
	return n.writer != nil
}

func (n *KafkaNotifier) OrderConfirmed(ctx context.Context, customerEmail string, order domain.Order, invoice domain.Invoice) error {
	if !n.Enabled() {
		return nil
	}

	event := orderConfirmedEvent{
		EventID:       uuid.NewString(),
		Type:          eventOrderConfirmed,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerID:    order.CustomerID,
		CustomerEmail: customerEmail,
		Total:         order.Total.Amount.StringFixed(2),
		Currency:      order.Total.Currency.String(),
		CreatedAt:     order.CreatedAt,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.OrderNumber),
		Value: value,
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}

	return nil
}

func (n *KafkaNotifier) Close() error {
	if n.writer == nil {
		return nil
	}
	return n.writer.Close()
}
