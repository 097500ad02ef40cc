package pgrepo

import (
	"context"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/repository/repoargs"
	"github.com/fsdevblog/ledgerbook/pkg/uow"
)

// TransactionRepository scopes every single-record operation by id,
// customer_id and the denormalized user_id at once, mirroring the
// owner-scoped queries of CustomerRepository.
type TransactionRepository struct {
	db uow.DBTX
}

func NewTransactionRepository(db uow.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.TransactionCreate,
) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO transactions (customer_id, user_id, type, amount, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at, customer_id, user_id, type, amount, description, date`,
		args.CustomerID, args.UserID, args.Type, args.Amount, args.Description, args.Date,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating transaction for customer %d", args.CustomerID)
	}
	return transaction, nil
}

// GetByCustomerID returns transactions newest first by effective date,
// falling back to creation time for same-day entries.
func (r *TransactionRepository) GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, created_at, updated_at, customer_id, user_id, type, amount, description, date
		FROM transactions
		WHERE customer_id = $1
		ORDER BY date DESC, created_at DESC`,
		customerID,
	)
	if err != nil {
		return nil, convertErr(err, "listing transactions of customer %d", customerID)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "listing transactions of customer %d", customerID)
		}
		transactions = append(transactions, *transaction)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing transactions of customer %d", customerID)
	}
	return transactions, nil
}

func (r *TransactionRepository) Update(
	ctx context.Context,
	id, customerID, userID int64,
	args repoargs.TransactionUpdate,
) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE transactions
		SET type        = COALESCE($4, type),
		    amount      = COALESCE($5, amount),
		    description = COALESCE($6, description),
		    date        = COALESCE($7, date),
		    updated_at  = now()
		WHERE id = $1 AND customer_id = $2 AND user_id = $3
		RETURNING id, created_at, updated_at, customer_id, user_id, type, amount, description, date`,
		id, customerID, userID, args.Type, args.Amount, args.Description, args.Date,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "updating transaction %d", id)
	}
	return transaction, nil
}

// Delete removes the scoped row and returns it; no matching row surfaces as
// domain.ErrRecordNotFound through the empty RETURNING set.
func (r *TransactionRepository) Delete(
	ctx context.Context,
	id, customerID, userID int64,
) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		DELETE FROM transactions
		WHERE id = $1 AND customer_id = $2 AND user_id = $3
		RETURNING id, created_at, updated_at, customer_id, user_id, type, amount, description, date`,
		id, customerID, userID,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "deleting transaction %d", id)
	}
	return transaction, nil
}

// DeleteByCustomerID removes the dependents of a customer. Zero affected rows
// is fine here: a customer without transactions is a valid cascade target.
func (r *TransactionRepository) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM transactions
		WHERE customer_id = $1`,
		customerID,
	)
	if err != nil {
		return convertErr(err, "deleting transactions of customer %d", customerID)
	}
	return nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.ID, &t.CreatedAt, &t.UpdatedAt, &t.CustomerID, &t.UserID,
		&t.Type, &t.Amount, &t.Description, &t.Date,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &t, nil
}
