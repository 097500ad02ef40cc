package service

import (
	"context"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/events"
	"github.com/fsdevblog/ledgerbook/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, args repoargs.UpdateProfile) (*domain.User, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, args repoargs.CustomerCreate) (*domain.Customer, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Customer, error)
	FindByIDAndUser(ctx context.Context, id, userID int64) (*domain.Customer, error)
	Update(ctx context.Context, id, userID int64, args repoargs.CustomerUpdate) (*domain.Customer, error)
	Delete(ctx context.Context, id, userID int64) error
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Transaction, error)
	Update(
		ctx context.Context,
		id, customerID, userID int64,
		args repoargs.TransactionUpdate,
	) (*domain.Transaction, error)
	// Delete returns the removed row so callers can report what disappeared.
	Delete(ctx context.Context, id, customerID, userID int64) (*domain.Transaction, error)
	DeleteByCustomerID(ctx context.Context, customerID int64) error
}

// EventPublisher mirrors events.Publisher so the service layer can be mocked
// without importing a concrete broker.
type EventPublisher interface {
	Publish(ctx context.Context, event events.TransactionEvent) error
	PublishCustomer(ctx context.Context, event events.CustomerEvent) error
	Close() error
}
