package domain

type TransactionType string

const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

func (t TransactionType) Valid() bool {
	return t == TransactionDebit || t == TransactionCredit
}

// DescriptionNone is stored and displayed in place of a blank description.
// Applied by the write path, not by validation.
const DescriptionNone = "NONE"
