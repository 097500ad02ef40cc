package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/ledgerbook/internal/domain"
)

// TopLimit caps the per-direction rankings in Summarize.
const TopLimit = 5

type CustomerBalance struct {
	Customer domain.Customer
	Balance  decimal.Decimal
}

// Summary aggregates a user's customers for the analytics screen. Magnitudes
// of positive and negative balances are summed separately; customers with a
// zero balance appear in neither partition.
type Summary struct {
	TotalReceivable decimal.Decimal
	TotalPayable    decimal.Decimal
	TopReceivable   []CustomerBalance
	TopPayable      []CustomerBalance
}

func Summarize(balances []CustomerBalance) Summary {
	summary := Summary{
		TotalReceivable: decimal.Zero,
		TotalPayable:    decimal.Zero,
	}

	var receivable, payable []CustomerBalance
	for _, cb := range balances {
		switch cb.Balance.Sign() {
		case 1:
			summary.TotalReceivable = summary.TotalReceivable.Add(cb.Balance)
			receivable = append(receivable, cb)
		case -1:
			summary.TotalPayable = summary.TotalPayable.Add(cb.Balance.Neg())
			payable = append(payable, cb)
		}
	}

	summary.TopReceivable = top(receivable)
	summary.TopPayable = top(payable)
	return summary
}

// top ranks by descending magnitude; ties keep their input order.
func top(balances []CustomerBalance) []CustomerBalance {
	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].Balance.Abs().GreaterThan(balances[j].Balance.Abs())
	})
	if len(balances) > TopLimit {
		balances = balances[:TopLimit]
	}
	return balances
}
