package ledger

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/ledgerbook/internal/domain"
)

func cb(id int64, balance string) CustomerBalance {
	return CustomerBalance{
		Customer: domain.Customer{ID: id, Name: fmt.Sprintf("customer-%d", id)},
		Balance:  decimal.RequireFromString(balance),
	}
}

func TestSummarize_Totals(t *testing.T) {
	summary := Summarize([]CustomerBalance{
		cb(1, "300"),
		cb(2, "-150"),
		cb(3, "0"),
		cb(4, "50.25"),
		cb(5, "-9.75"),
	})

	assert.True(t, summary.TotalReceivable.Equal(decimal.RequireFromString("350.25")),
		"got %s", summary.TotalReceivable)
	assert.True(t, summary.TotalPayable.Equal(decimal.RequireFromString("159.75")),
		"got %s", summary.TotalPayable)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.True(t, summary.TotalReceivable.IsZero())
	assert.True(t, summary.TotalPayable.IsZero())
	assert.Empty(t, summary.TopReceivable)
	assert.Empty(t, summary.TopPayable)
}

func TestSummarize_TopFive(t *testing.T) {
	var balances []CustomerBalance
	// seven receivable customers 100..700, three payable.
	for i := int64(1); i <= 7; i++ {
		balances = append(balances, cb(i, decimal.NewFromInt(i*100).String()))
	}
	balances = append(balances, cb(8, "-40"), cb(9, "-500"), cb(10, "-40"))

	summary := Summarize(balances)

	require.Len(t, summary.TopReceivable, TopLimit)
	// descending magnitude: 700, 600, 500, 400, 300.
	for i, want := range []int64{7, 6, 5, 4, 3} {
		assert.Equal(t, want, summary.TopReceivable[i].Customer.ID)
	}

	require.Len(t, summary.TopPayable, 3)
	assert.Equal(t, int64(9), summary.TopPayable[0].Customer.ID)
	// equal magnitudes keep input order.
	assert.Equal(t, int64(8), summary.TopPayable[1].Customer.ID)
	assert.Equal(t, int64(10), summary.TopPayable[2].Customer.ID)
}

func TestSummarize_ZeroBalancesExcluded(t *testing.T) {
	summary := Summarize([]CustomerBalance{cb(1, "0"), cb(2, "0")})

	assert.Empty(t, summary.TopReceivable)
	assert.Empty(t, summary.TopPayable)
}
