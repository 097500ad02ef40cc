package kafka

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/fsdevblog/ledgerbook/internal/events"
)

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(broker, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish writes the event keyed by customer id, so all events of one
// customer land on the same partition in order.
func (p *Publisher) Publish(ctx context.Context, event events.TransactionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal transaction event")
	}

	writeErr := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.CustomerID, 10)),
		Value: data,
	})
	return errors.Wrap(writeErr, "publish transaction event")
}

// PublishCustomer shares the customer-id keying with Publish, so a customer
// removal is ordered after the transaction events it supersedes.
func (p *Publisher) PublishCustomer(ctx context.Context, event events.CustomerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal customer event")
	}

	writeErr := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.CustomerID, 10)),
		Value: data,
	})
	return errors.Wrap(writeErr, "publish customer event")
}

func (p *Publisher) Close() error {
	return errors.Wrap(p.writer.Close(), "close kafka writer")
}
