package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/repository/repoargs"
)

const maxDescriptionLength = 500

// dateFormats accepted for the effective date, tried in order.
var dateFormats = []string{time.RFC3339, "2006-01-02"}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError accumulates every failing rule; the caller gets the full
// list in one response rather than one rule per round trip.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// TransactionCandidate are the raw fields of a transaction before admission.
// The date arrives as the wire string so the validator owns its parsing.
type TransactionCandidate struct {
	Type        string
	Amount      decimal.Decimal
	Description string
	Date        *string
}

// TransactionPatch is the partial-update counterpart: nil means "leave the
// stored value alone", and rules only run for fields that are present.
type TransactionPatch struct {
	Type        *string
	Amount      *decimal.Decimal
	Description *string
	Date        *string
}

// AdmittedTransaction carries the normalized fields of a candidate that
// passed validation. Description is absent: the blank-to-"NONE" defaulting is
// a write path concern, not a validation one.
type AdmittedTransaction struct {
	Type   domain.TransactionType
	Amount decimal.Decimal
	Date   time.Time
}

// ValidateTransactionCreate checks every admission rule against now and
// returns either the normalized fields or a ValidationError listing each
// violated rule.
func ValidateTransactionCreate(candidate TransactionCandidate, now time.Time) (*AdmittedTransaction, error) {
	var vErr ValidationError

	transactionType := validateType(candidate.Type, &vErr)
	validateAmount(candidate.Amount, &vErr)
	validateDescription(candidate.Description, &vErr)

	date := now
	if candidate.Date != nil {
		if parsed, ok := validateDate(*candidate.Date, now, &vErr); ok {
			date = parsed
		}
	}

	if err := vErr.orNil(); err != nil {
		return nil, err
	}
	return &AdmittedTransaction{
		Type:   transactionType,
		Amount: candidate.Amount,
		Date:   date,
	}, nil
}

// ValidateTransactionUpdate applies the admission rules to the present fields
// only and maps them onto a repository patch.
func ValidateTransactionUpdate(patch TransactionPatch, now time.Time) (*repoargs.TransactionUpdate, error) {
	var vErr ValidationError
	var update repoargs.TransactionUpdate

	if patch.Type != nil {
		transactionType := validateType(*patch.Type, &vErr)
		update.Type = &transactionType
	}
	if patch.Amount != nil {
		validateAmount(*patch.Amount, &vErr)
		update.Amount = patch.Amount
	}
	if patch.Description != nil {
		validateDescription(*patch.Description, &vErr)
		description := normalizeDescription(*patch.Description)
		update.Description = &description
	}
	if patch.Date != nil {
		if parsed, ok := validateDate(*patch.Date, now, &vErr); ok {
			update.Date = &parsed
		}
	}

	if err := vErr.orNil(); err != nil {
		return nil, err
	}
	return &update, nil
}

// validateType admits only the two enum values; a present-but-empty type is
// as invalid as an unknown one.
func validateType(raw string, vErr *ValidationError) domain.TransactionType {
	if raw == "" {
		vErr.add("type", "type is required")
		return ""
	}
	transactionType := domain.TransactionType(raw)
	if !transactionType.Valid() {
		vErr.add("type", "type must be either debit or credit")
	}
	return transactionType
}

func validateAmount(amount decimal.Decimal, vErr *ValidationError) {
	if !amount.IsPositive() {
		vErr.add("amount", "amount must be greater than 0")
	}
}

func validateDescription(description string, vErr *ValidationError) {
	if len([]rune(strings.TrimSpace(description))) > maxDescriptionLength {
		vErr.add("description", fmt.Sprintf("description cannot exceed %d characters", maxDescriptionLength))
	}
}

// validateDate parses raw and rejects dates after the end of the current day
// (UTC). A date within today is fine.
func validateDate(raw string, now time.Time, vErr *ValidationError) (time.Time, bool) {
	var parsed time.Time
	var parseErr error
	for _, format := range dateFormats {
		parsed, parseErr = time.Parse(format, raw)
		if parseErr == nil {
			break
		}
	}
	if parseErr != nil {
		vErr.add("date", "date must be a valid calendar date")
		return time.Time{}, false
	}

	endOfToday := now.UTC().Truncate(24 * time.Hour).Add(24*time.Hour - time.Nanosecond)
	if parsed.After(endOfToday) {
		vErr.add("date", "date cannot be in the future")
		return time.Time{}, false
	}
	return parsed, true
}

// normalizeDescription is the write path defaulting: storage and display
// never show an empty description.
func normalizeDescription(description string) string {
	if strings.TrimSpace(description) == "" {
		return domain.DescriptionNone
	}
	return description
}
