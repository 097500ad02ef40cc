package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Email     string
	Password  string
}

type Customer struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64
	Name      string
	Phone     string
}

// Transaction carries a denormalized UserID (copy of the owning customer's
// UserID, assigned on creation and never changed afterwards) so ownership
// checks do not have to join through the customer.
type Transaction struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CustomerID  int64
	UserID      int64
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}
