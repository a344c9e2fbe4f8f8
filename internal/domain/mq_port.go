package domain

import "context"

// EventMessage is a broker-agnostic envelope for gate events.
type EventMessage struct {
	Key   string
	Value []byte
}

type PublisherPort interface {
	Publish(ctx context.Context, msg EventMessage) error
	Close() error
}

// ReceiptPrinter delivers a completed weighing ticket to the printing
// collaborator. Implementations are fire-and-forget; failures are logged, not
// surfaced to the weigh flow.
type ReceiptPrinter interface {
	PrintWeighing(ctx context.Context, orderNumber string) error
}
