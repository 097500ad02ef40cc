package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/ledger"
	"github.com/fsdevblog/ledgerbook/internal/service"
)

// UserServicer exists for the handler mocks.
type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, args service.UpdateProfileArgs) (*domain.User, error)
}

type CustomerServicer interface {
	ListWithBalances(ctx context.Context, userID int64) ([]ledger.CustomerBalance, error)
	Create(ctx context.Context, userID int64, args service.CustomerCreateArgs) (*domain.Customer, error)
	Update(
		ctx context.Context,
		userID, customerID int64,
		args service.CustomerUpdateArgs,
	) (*domain.Customer, error)
	Delete(ctx context.Context, userID, customerID int64) error
	Analytics(ctx context.Context, userID int64) (*ledger.Summary, error)
}

type TransactionServicer interface {
	ListByCustomer(ctx context.Context, userID, customerID int64) (*domain.Customer, []domain.Transaction, error)
	Add(
		ctx context.Context,
		userID, customerID int64,
		candidate service.TransactionCandidate,
	) (*domain.Transaction, error)
	Update(
		ctx context.Context,
		userID, customerID, transactionID int64,
		patch service.TransactionPatch,
	) (*domain.Transaction, error)
	Delete(ctx context.Context, userID, customerID, transactionID int64) error
}
