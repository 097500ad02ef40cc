package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/ledgerbook/internal/domain"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	names := make([]string, len(vErr.Fields))
	for i, f := range vErr.Fields {
		names[i] = f.Field
	}
	return names
}

func TestValidateTransactionCreate_Valid(t *testing.T) {
	dateStr := "2026-08-27"
	admitted, err := ValidateTransactionCreate(TransactionCandidate{
		Type:        "debit",
		Amount:      decimal.NewFromInt(500),
		Description: "advance payment",
		Date:        &dateStr,
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionDebit, admitted.Type)
	assert.True(t, admitted.Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), admitted.Date)
}

func TestValidateTransactionCreate_DateDefaultsToNow(t *testing.T) {
	admitted, err := ValidateTransactionCreate(TransactionCandidate{
		Type:   "credit",
		Amount: decimal.NewFromFloat(0.01),
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow, admitted.Date)
}

func TestValidateTransactionCreate_DateFormats(t *testing.T) {
	for _, raw := range []string{"2026-08-28", "2026-08-28T10:30:00Z", "2026-08-28T10:30:00+03:00"} {
		dateStr := raw
		_, err := ValidateTransactionCreate(TransactionCandidate{
			Type:   "debit",
			Amount: decimal.NewFromInt(1),
			Date:   &dateStr,
		}, testNow)
		assert.NoError(t, err, "format %s", raw)
	}
}

func TestValidateTransactionCreate_TypeRules(t *testing.T) {
	_, err := ValidateTransactionCreate(TransactionCandidate{
		Amount: decimal.NewFromInt(10),
	}, testNow)
	assert.Contains(t, fieldNames(t, err), "type")

	_, err = ValidateTransactionCreate(TransactionCandidate{
		Type:   "refund",
		Amount: decimal.NewFromInt(10),
	}, testNow)
	assert.Contains(t, fieldNames(t, err), "type")
}

func TestValidateTransactionCreate_AmountRules(t *testing.T) {
	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := ValidateTransactionCreate(TransactionCandidate{
			Type:   "credit",
			Amount: amount,
		}, testNow)
		assert.Contains(t, fieldNames(t, err), "amount")
	}
}

func TestValidateTransactionCreate_DescriptionTooLong(t *testing.T) {
	_, err := ValidateTransactionCreate(TransactionCandidate{
		Type:        "debit",
		Amount:      decimal.NewFromInt(10),
		Description: strings.Repeat("x", maxDescriptionLength+1),
	}, testNow)
	assert.Contains(t, fieldNames(t, err), "description")

	_, err = ValidateTransactionCreate(TransactionCandidate{
		Type:        "debit",
		Amount:      decimal.NewFromInt(10),
		Description: strings.Repeat("x", maxDescriptionLength),
	}, testNow)
	assert.NoError(t, err)
}

func TestValidateTransactionCreate_FutureDate(t *testing.T) {
	tomorrow := "2026-08-29"
	_, err := ValidateTransactionCreate(TransactionCandidate{
		Type:   "debit",
		Amount: decimal.NewFromInt(10),
		Date:   &tomorrow,
	}, testNow)
	assert.Contains(t, fieldNames(t, err), "date")

	// later today is still admissible
	today := "2026-08-28T23:00:00Z"
	_, err = ValidateTransactionCreate(TransactionCandidate{
		Type:   "debit",
		Amount: decimal.NewFromInt(10),
		Date:   &today,
	}, testNow)
	assert.NoError(t, err)
}

func TestValidateTransactionCreate_Garbage(t *testing.T) {
	garbage := "yesterday"
	_, err := ValidateTransactionCreate(TransactionCandidate{
		Type:   "debit",
		Amount: decimal.NewFromInt(10),
		Date:   &garbage,
	}, testNow)
	assert.Contains(t, fieldNames(t, err), "date")
}

func TestValidateTransactionCreate_AccumulatesEveryViolation(t *testing.T) {
	garbage := "not-a-date"
	_, err := ValidateTransactionCreate(TransactionCandidate{
		Type:        "refund",
		Amount:      decimal.Zero,
		Description: strings.Repeat("x", maxDescriptionLength+1),
		Date:        &garbage,
	}, testNow)

	names := fieldNames(t, err)
	assert.ElementsMatch(t, []string{"type", "amount", "description", "date"}, names)
}

func TestValidateTransactionUpdate_EmptyPatch(t *testing.T) {
	update, err := ValidateTransactionUpdate(TransactionPatch{}, testNow)
	require.NoError(t, err)

	assert.Nil(t, update.Type)
	assert.Nil(t, update.Amount)
	assert.Nil(t, update.Description)
	assert.Nil(t, update.Date)
}

func TestValidateTransactionUpdate_PartialFields(t *testing.T) {
	amount := decimal.NewFromInt(250)
	update, err := ValidateTransactionUpdate(TransactionPatch{Amount: &amount}, testNow)
	require.NoError(t, err)

	require.NotNil(t, update.Amount)
	assert.True(t, update.Amount.Equal(amount))
	assert.Nil(t, update.Type)
	assert.Nil(t, update.Description)
	assert.Nil(t, update.Date)
}

func TestValidateTransactionUpdate_RulesStillApply(t *testing.T) {
	badType := "refund"
	zero := decimal.Zero
	_, err := ValidateTransactionUpdate(TransactionPatch{
		Type:   &badType,
		Amount: &zero,
	}, testNow)

	names := fieldNames(t, err)
	assert.ElementsMatch(t, []string{"type", "amount"}, names)
}

func TestValidateTransactionUpdate_EmptyTypeRejected(t *testing.T) {
	empty := ""
	_, err := ValidateTransactionUpdate(TransactionPatch{Type: &empty}, testNow)

	assert.Contains(t, fieldNames(t, err), "type")
}

func TestValidateTransactionUpdate_BlankDescriptionBecomesNone(t *testing.T) {
	blank := "   "
	update, err := ValidateTransactionUpdate(TransactionPatch{Description: &blank}, testNow)
	require.NoError(t, err)

	require.NotNil(t, update.Description)
	assert.Equal(t, domain.DescriptionNone, *update.Description)
}

func TestValidationError_Message(t *testing.T) {
	var vErr ValidationError
	vErr.add("amount", "amount must be greater than 0")

	var err error = &vErr
	var target *ValidationError
	assert.True(t, errors.As(err, &target))
	assert.Contains(t, err.Error(), "amount must be greater than 0")
}
