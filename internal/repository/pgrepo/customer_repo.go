package pgrepo

import (
	"context"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/repository/repoargs"
	"github.com/fsdevblog/ledgerbook/pkg/uow"
)

// CustomerRepository exposes only owner-scoped lookups: every query that
// names a customer id also filters by user_id, so a record belonging to
// someone else behaves exactly like a missing one.
type CustomerRepository struct {
	db uow.DBTX
}

func NewCustomerRepository(db uow.DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, args repoargs.CustomerCreate) (*domain.Customer, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO customers (user_id, name, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, user_id, name, phone`,
		args.UserID, args.Name, args.Phone,
	)
	customer, err := scanCustomer(row)
	if err != nil {
		return nil, convertErr(err, "creating customer")
	}
	return customer, nil
}

func (r *CustomerRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, created_at, updated_at, user_id, name, phone
		FROM customers
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, convertErr(err, "listing customers of user %d", userID)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		customer, scanErr := scanCustomer(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "listing customers of user %d", userID)
		}
		customers = append(customers, *customer)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing customers of user %d", userID)
	}
	return customers, nil
}

func (r *CustomerRepository) FindByIDAndUser(ctx context.Context, id, userID int64) (*domain.Customer, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, created_at, updated_at, user_id, name, phone
		FROM customers
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	customer, err := scanCustomer(row)
	if err != nil {
		return nil, convertErr(err, "finding customer %d", id)
	}
	return customer, nil
}

func (r *CustomerRepository) Update(
	ctx context.Context,
	id, userID int64,
	args repoargs.CustomerUpdate,
) (*domain.Customer, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE customers
		SET name       = COALESCE($3, name),
		    phone      = COALESCE($4, phone),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, created_at, updated_at, user_id, name, phone`,
		id, userID, args.Name, args.Phone,
	)
	customer, err := scanCustomer(row)
	if err != nil {
		return nil, convertErr(err, "updating customer %d", id)
	}
	return customer, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM customers
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return convertErr(err, "deleting customer %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(errNoRowsAffected, "deleting customer %d", id)
	}
	return nil
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.UserID, &c.Name, &c.Phone); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &c, nil
}
