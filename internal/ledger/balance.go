// Package ledger derives balances from transaction sets. A balance is never
// stored anywhere: it is recomputed from the current transactions on every
// read, so there is nothing to go stale.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/ledgerbook/internal/domain"
)

type BalanceState string

const (
	StatePositive BalanceState = "POSITIVE"
	StateNegative BalanceState = "NEGATIVE"
	StateZero     BalanceState = "ZERO"
)

const (
	LabelYouWillGet  = "you will get"
	LabelYouWillGive = "you will give"
	LabelNoBalance   = "no balance"
)

// Balance folds a customer's transactions into a signed balance: credits add,
// debits subtract. Traversal order does not matter.
func Balance(transactions []domain.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range transactions {
		if t.Type == domain.TransactionCredit {
			balance = balance.Add(t.Amount)
		} else {
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// Classification is the presentation form of a balance: the sign picks the
// label, the magnitude is what gets displayed.
type Classification struct {
	State  BalanceState
	Label  string
	Amount decimal.Decimal
}

func Classify(balance decimal.Decimal) Classification {
	switch balance.Sign() {
	case 1:
		return Classification{State: StatePositive, Label: LabelYouWillGet, Amount: balance}
	case -1:
		return Classification{State: StateNegative, Label: LabelYouWillGive, Amount: balance.Neg()}
	default:
		return Classification{State: StateZero, Label: LabelNoBalance, Amount: decimal.Zero}
	}
}
