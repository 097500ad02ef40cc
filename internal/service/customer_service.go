package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/events"
	"github.com/fsdevblog/ledgerbook/internal/ledger"
	"github.com/fsdevblog/ledgerbook/internal/repository/repoargs"
	"github.com/fsdevblog/ledgerbook/pkg/uow"
)

type CustomerService struct {
	uow             uow.UOW
	customerRepo    CustomerRepository
	transactionRepo TransactionRepository
	publisher       EventPublisher
	logger          logrus.FieldLogger
}

func NewCustomerService(u uow.UOW, publisher EventPublisher, l logrus.FieldLogger) (*CustomerService, error) {
	customerRepo, customerRepoErr := uow.GetRepositoryAs[CustomerRepository](
		u, uow.RepositoryName(repoargs.CustomerRepoName),
	)
	if customerRepoErr != nil {
		return nil, customerRepoErr //nolint:wrapcheck
	}
	transactionRepo, transactionRepoErr := uow.GetRepositoryAs[TransactionRepository](
		u, uow.RepositoryName(repoargs.TransactionRepoName),
	)
	if transactionRepoErr != nil {
		return nil, transactionRepoErr //nolint:wrapcheck
	}
	return &CustomerService{
		uow:             u,
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		publisher:       publisher,
		logger:          l,
	}, nil
}

// ListWithBalances returns the user's customers, each with its balance
// derived from the current transaction set.
func (s *CustomerService) ListWithBalances(ctx context.Context, userID int64) ([]ledger.CustomerBalance, error) {
	customers, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	balances := make([]ledger.CustomerBalance, len(customers))
	for i, customer := range customers {
		transactions, trErr := s.transactionRepo.GetByCustomerID(ctx, customer.ID)
		if trErr != nil {
			return nil, fmt.Errorf("listing customers: %w", trErr)
		}
		balances[i] = ledger.CustomerBalance{
			Customer: customer,
			Balance:  ledger.Balance(transactions),
		}
	}
	return balances, nil
}

type CustomerCreateArgs struct {
	Name  string
	Phone string
}

func (s *CustomerService) Create(ctx context.Context, userID int64, args CustomerCreateArgs) (*domain.Customer, error) {
	customer, err := s.customerRepo.Create(ctx, repoargs.CustomerCreate{
		UserID: userID,
		Name:   args.Name,
		Phone:  args.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}
	return customer, nil
}

type CustomerUpdateArgs struct {
	Name  *string
	Phone *string
}

func (s *CustomerService) Update(
	ctx context.Context,
	userID, customerID int64,
	args CustomerUpdateArgs,
) (*domain.Customer, error) {
	customer, err := s.customerRepo.Update(ctx, customerID, userID, repoargs.CustomerUpdate{
		Name:  args.Name,
		Phone: args.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("updating customer %d: %w", customerID, err)
	}
	return customer, nil
}

// Delete removes the customer and all of its transactions inside one
// database transaction: either both disappear or neither does. The ownership
// check runs first, inside the same transaction, so foreign transactions can
// never be swept by a guessed customer id.
func (s *CustomerService) Delete(ctx context.Context, userID, customerID int64) error {
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		customerRepo, customerRepoErr := uow.GetAs[CustomerRepository](
			tx, uow.RepositoryName(repoargs.CustomerRepoName),
		)
		if customerRepoErr != nil {
			return customerRepoErr //nolint:wrapcheck
		}
		transactionRepo, transactionRepoErr := uow.GetAs[TransactionRepository](
			tx, uow.RepositoryName(repoargs.TransactionRepoName),
		)
		if transactionRepoErr != nil {
			return transactionRepoErr //nolint:wrapcheck
		}

		if _, findErr := customerRepo.FindByIDAndUser(c, customerID, userID); findErr != nil {
			return findErr //nolint:wrapcheck
		}
		// children first: the customers row is still referenced until they go
		if delErr := transactionRepo.DeleteByCustomerID(c, customerID); delErr != nil {
			return delErr //nolint:wrapcheck
		}
		return customerRepo.Delete(c, customerID, userID) //nolint:wrapcheck
	})

	if txErr != nil {
		return fmt.Errorf("deleting customer %d: %w", customerID, txErr)
	}

	// best effort, after the commit: the rows are already gone
	event := events.CustomerEvent{
		EventID:    uuid.NewString(),
		Action:     events.ActionDeleted,
		CustomerID: customerID,
		UserID:     userID,
		OccurredAt: time.Now(),
	}
	if pubErr := s.publisher.PublishCustomer(ctx, event); pubErr != nil {
		s.logger.WithError(pubErr).
			WithField("customerID", customerID).
			Error("publishing customer event")
	}
	return nil
}

// Analytics aggregates the user's customer balances for the analytics screen.
func (s *CustomerService) Analytics(ctx context.Context, userID int64) (*ledger.Summary, error) {
	balances, err := s.ListWithBalances(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("building analytics: %w", err)
	}
	summary := ledger.Summarize(balances)
	return &summary, nil
}
