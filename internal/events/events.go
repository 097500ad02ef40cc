// Package events carries ledger change notifications out of the write path.
// Publishing is best effort: a failed publish is logged by the caller and
// never fails the request that produced it.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/ledgerbook/internal/domain"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

type TransactionEvent struct {
	EventID       string                 `json:"event_id"`
	Action        Action                 `json:"action"`
	TransactionID int64                  `json:"transaction_id"`
	CustomerID    int64                  `json:"customer_id"`
	UserID        int64                  `json:"user_id"`
	Type          domain.TransactionType `json:"type,omitempty"`
	Amount        decimal.Decimal        `json:"amount,omitempty"`
	OccurredAt    time.Time              `json:"occurred_at"`
}

// CustomerEvent announces a customer removal; the cascade deleted its
// transactions in the same database transaction, so consumers drop the whole
// subtree on this one event.
type CustomerEvent struct {
	EventID    string    `json:"event_id"`
	Action     Action    `json:"action"`
	CustomerID int64     `json:"customer_id"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event TransactionEvent) error
	PublishCustomer(ctx context.Context, event CustomerEvent) error
	Close() error
}
