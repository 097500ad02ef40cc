package ledger

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/ledgerbook/internal/domain"
)

func credit(amount string) domain.Transaction {
	return domain.Transaction{Type: domain.TransactionCredit, Amount: decimal.RequireFromString(amount)}
}

func debit(amount string) domain.Transaction {
	return domain.Transaction{Type: domain.TransactionDebit, Amount: decimal.RequireFromString(amount)}
}

func TestBalance_Empty(t *testing.T) {
	assert.True(t, Balance(nil).IsZero())
	assert.True(t, Balance([]domain.Transaction{}).IsZero())
}

func TestBalance(t *testing.T) {
	cases := []struct {
		name         string
		transactions []domain.Transaction
		want         string
	}{
		{
			name:         "credits minus debits",
			transactions: []domain.Transaction{credit("500"), debit("200")},
			want:         "300",
		},
		{
			name:         "all debits go negative",
			transactions: []domain.Transaction{debit("10.50"), debit("0.50")},
			want:         "-11",
		},
		{
			name:         "settles to zero",
			transactions: []domain.Transaction{credit("99.99"), debit("99.99")},
			want:         "0",
		},
		{
			name:         "small amounts do not drift",
			transactions: []domain.Transaction{credit("0.1"), credit("0.2"), debit("0.3")},
			want:         "0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Balance(tc.transactions)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestBalance_OrderIndependent(t *testing.T) {
	transactions := []domain.Transaction{
		credit("500"), debit("200"), credit("0.01"), debit("124.75"), credit("43"),
	}
	want := Balance(transactions)

	shuffled := make([]domain.Transaction, len(transactions))
	copy(shuffled, transactions)
	for range 10 {
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		assert.True(t, Balance(shuffled).Equal(want))
	}
}

func TestBalance_FlippedTypesNegate(t *testing.T) {
	transactions := []domain.Transaction{
		credit("500"), debit("200"), credit("17.42"), debit("3"),
	}
	flipped := make([]domain.Transaction, len(transactions))
	for i, tr := range transactions {
		flipped[i] = tr
		if tr.Type == domain.TransactionCredit {
			flipped[i].Type = domain.TransactionDebit
		} else {
			flipped[i].Type = domain.TransactionCredit
		}
	}

	require.True(t, Balance(flipped).Equal(Balance(transactions).Neg()))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		balance    string
		wantState  BalanceState
		wantLabel  string
		wantAmount string
	}{
		{name: "positive", balance: "300", wantState: StatePositive, wantLabel: LabelYouWillGet, wantAmount: "300"},
		{name: "negative", balance: "-120.50", wantState: StateNegative, wantLabel: LabelYouWillGive, wantAmount: "120.50"},
		{name: "zero", balance: "0", wantState: StateZero, wantLabel: LabelNoBalance, wantAmount: "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(decimal.RequireFromString(tc.balance))
			assert.Equal(t, tc.wantState, got.State)
			assert.Equal(t, tc.wantLabel, got.Label)
			assert.True(t, got.Amount.Equal(decimal.RequireFromString(tc.wantAmount)))
		})
	}
}
