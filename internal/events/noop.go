package events

import "context"

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, TransactionEvent) error { return nil }

func (NoopPublisher) PublishCustomer(context.Context, CustomerEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
