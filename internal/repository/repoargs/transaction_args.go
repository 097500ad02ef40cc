package repoargs

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/ledgerbook/internal/domain"
)

type TransactionCreate struct {
	CustomerID  int64
	UserID      int64
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// TransactionUpdate applies only non-nil fields; absent fields keep their
// stored value.
type TransactionUpdate struct {
	Type        *domain.TransactionType
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
}
