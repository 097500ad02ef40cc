package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/events"
	"github.com/fsdevblog/ledgerbook/internal/repository/repoargs"
	"github.com/fsdevblog/ledgerbook/pkg/uow"
)

type TransactionService struct {
	uow             uow.UOW
	customerRepo    CustomerRepository
	transactionRepo TransactionRepository
	publisher       EventPublisher
	logger          logrus.FieldLogger
}

func NewTransactionService(u uow.UOW, publisher EventPublisher, l logrus.FieldLogger) (*TransactionService, error) {
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
	return &TransactionService{
		uow:             u,
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		publisher:       publisher,
		logger:          l,
	}, nil
}

// ListByCustomer returns the customer together with its transactions, newest
// first. The owner-scoped customer lookup is the authorization check: a
// foreign customer id yields domain.ErrRecordNotFound.
func (s *TransactionService) ListByCustomer(
	ctx context.Context,
	userID, customerID int64,
) (*domain.Customer, []domain.Transaction, error) {
	customer, customerErr := s.customerRepo.FindByIDAndUser(ctx, customerID, userID)
	if customerErr != nil {
		return nil, nil, fmt.Errorf("listing transactions: %w", customerErr)
	}

	transactions, trErr := s.transactionRepo.GetByCustomerID(ctx, customerID)
	if trErr != nil {
		return nil, nil, fmt.Errorf("listing transactions: %w", trErr)
	}
	return customer, transactions, nil
}

// Add validates the candidate and admits it under the named customer. The
// stored user id is copied from the customer record, not taken from the
// request, which keeps the denormalized owner consistent by construction.
func (s *TransactionService) Add(
	ctx context.Context,
	userID, customerID int64,
	candidate TransactionCandidate,
) (*domain.Transaction, error) {
	customer, customerErr := s.customerRepo.FindByIDAndUser(ctx, customerID, userID)
	if customerErr != nil {
		return nil, fmt.Errorf("adding transaction: %w", customerErr)
	}

	admitted, validationErr := ValidateTransactionCreate(candidate, time.Now())
	if validationErr != nil {
		return nil, validationErr
	}

	transaction, createErr := s.transactionRepo.Create(ctx, repoargs.TransactionCreate{
		CustomerID:  customer.ID,
		UserID:      customer.UserID,
		Type:        admitted.Type,
		Amount:      admitted.Amount,
		Description: normalizeDescription(candidate.Description),
		Date:        admitted.Date,
	})
	if createErr != nil {
		return nil, fmt.Errorf("adding transaction: %w", createErr)
	}

	s.publish(ctx, events.ActionCreated, transaction)
	return transaction, nil
}

// Update applies a partial update: only fields present in the patch change.
func (s *TransactionService) Update(
	ctx context.Context,
	userID, customerID, transactionID int64,
	patch TransactionPatch,
) (*domain.Transaction, error) {
	if _, customerErr := s.customerRepo.FindByIDAndUser(ctx, customerID, userID); customerErr != nil {
		return nil, fmt.Errorf("updating transaction: %w", customerErr)
	}

	update, validationErr := ValidateTransactionUpdate(patch, time.Now())
	if validationErr != nil {
		return nil, validationErr
	}

	transaction, updateErr := s.transactionRepo.Update(ctx, transactionID, customerID, userID, *update)
	if updateErr != nil {
		return nil, fmt.Errorf("updating transaction %d: %w", transactionID, updateErr)
	}

	s.publish(ctx, events.ActionUpdated, transaction)
	return transaction, nil
}

// Delete removes the transaction and publishes the deleted row, so consumers
// see the type and amount that actually disappeared.
func (s *TransactionService) Delete(ctx context.Context, userID, customerID, transactionID int64) error {
	if _, customerErr := s.customerRepo.FindByIDAndUser(ctx, customerID, userID); customerErr != nil {
		return fmt.Errorf("deleting transaction: %w", customerErr)
	}

	deleted, delErr := s.transactionRepo.Delete(ctx, transactionID, customerID, userID)
	if delErr != nil {
		return fmt.Errorf("deleting transaction %d: %w", transactionID, delErr)
	}

	s.publish(ctx, events.ActionDeleted, deleted)
	return nil
}

// publish is best effort: the ledger write already committed, so a broker
// failure only gets logged.
func (s *TransactionService) publish(ctx context.Context, action events.Action, transaction *domain.Transaction) {
	event := events.TransactionEvent{
		EventID:       uuid.NewString(),
		Action:        action,
		TransactionID: transaction.ID,
		CustomerID:    transaction.CustomerID,
		UserID:        transaction.UserID,
		Type:          transaction.Type,
		Amount:        transaction.Amount,
		OccurredAt:    time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).
			WithField("transactionID", transaction.ID).
			Error("publishing transaction event")
	}
}
