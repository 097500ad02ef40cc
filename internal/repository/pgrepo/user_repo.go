package pgrepo

import (
	"context"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/repository/repoargs"
	"github.com/fsdevblog/ledgerbook/pkg/uow"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, name, email, password`,
		args.Name, args.Email, args.Password,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user %s", args.Email)
	}
	return user, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, created_at, updated_at, name, email, password
		FROM users
		WHERE email = $1`,
		email,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by email")
	}
	return user, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, created_at, updated_at, name, email, password
		FROM users
		WHERE id = $1`,
		id,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user %d", id)
	}
	return user, nil
}

func (r *UserRepository) UpdateProfile(
	ctx context.Context,
	id int64,
	args repoargs.UpdateProfile,
) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET name       = COALESCE($2, name),
		    email      = COALESCE($3, email),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, created_at, updated_at, name, email, password`,
		id, args.Name, args.Email,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "updating profile of user %d", id)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Name, &u.Email, &u.Password); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &u, nil
}
