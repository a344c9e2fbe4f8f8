package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gatelogix/tos-gate-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type GatePublisher struct {
	writer *kafka.Writer
}

var _ domain.PublisherPort = (*GatePublisher)(nil)

func NewGatePublisher(brokers []string, topic string) *GatePublisher {
	return &GatePublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *GatePublisher) Publish(ctx context.Context, msg domain.EventMessage) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Value,
		Time:  time.Now(),
	})
}

// PublishWeighing serializes and publishes one lifecycle event, keyed by
// order number so a consumer sees each order's transitions in order.
func (p *GatePublisher) PublishWeighing(ctx context.Context, event WeighingEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Publish(ctx, domain.EventMessage{Key: event.OrderNumber, Value: v})
}

func (p *GatePublisher) Close() error {
	return p.writer.Close()
}
