package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/events"
	"github.com/fsdevblog/ledgerbook/internal/repository/repoargs"
	"github.com/fsdevblog/ledgerbook/internal/service/mocks"
	"github.com/fsdevblog/ledgerbook/pkg/uow"
	uowmocks "github.com/fsdevblog/ledgerbook/pkg/uow/mocks"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	mockCtrl            *gomock.Controller
	mockUOW             *uowmocks.MockUOW
	mockTX              *uowmocks.MockTX
	mockCustomerRepo    *mocks.MockCustomerRepository
	mockTransactionRepo *mocks.MockTransactionRepository
	mockPublisher       *mocks.MockEventPublisher
	service             *CustomerService
}

func TestCustomerServiceSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}

func (s *CustomerServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockCustomerRepo = mocks.NewMockCustomerRepository(s.mockCtrl)
	s.mockTransactionRepo = mocks.NewMockTransactionRepository(s.mockCtrl)
	s.mockPublisher = mocks.NewMockEventPublisher(s.mockCtrl)

	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.CustomerRepoName)).
		Return(s.mockCustomerRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransactionRepo, nil).AnyTimes()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var err error
	s.service, err = NewCustomerService(s.mockUOW, s.mockPublisher, logger)
	s.Require().NoError(err)
}

func (s *CustomerServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *CustomerServiceTestSuite) expectDo() {
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.CustomerRepoName)).
		Return(s.mockCustomerRepo, nil).AnyTimes()
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTransactionRepo, nil).AnyTimes()
}

func (s *CustomerServiceTestSuite) TestListWithBalances() {
	const userID int64 = 1
	customers := []domain.Customer{
		{ID: 10, UserID: userID, Name: "Acme Ltd"},
		{ID: 11, UserID: userID, Name: "No Deals Yet"},
	}

	s.mockCustomerRepo.EXPECT().GetByUserID(gomock.Any(), userID).Return(customers, nil)
	s.mockTransactionRepo.EXPECT().GetByCustomerID(gomock.Any(), int64(10)).Return([]domain.Transaction{
		{Type: domain.TransactionCredit, Amount: decimal.NewFromInt(100)},
		{Type: domain.TransactionDebit, Amount: decimal.NewFromInt(30)},
	}, nil)
	s.mockTransactionRepo.EXPECT().GetByCustomerID(gomock.Any(), int64(11)).Return(nil, nil)

	balances, err := s.service.ListWithBalances(s.T().Context(), userID)
	s.Require().NoError(err)
	s.Require().Len(balances, 2)

	s.Equal(customers[0], balances[0].Customer)
	s.True(balances[0].Balance.Equal(decimal.NewFromInt(70)))
	s.True(balances[1].Balance.IsZero())
}

func (s *CustomerServiceTestSuite) TestCreate() {
	const userID int64 = 1
	stored := &domain.Customer{ID: 5, UserID: userID, Name: "Acme Ltd", Phone: "5551234567"}

	s.mockCustomerRepo.EXPECT().
		Create(gomock.Any(), repoargs.CustomerCreate{
			UserID: userID,
			Name:   "Acme Ltd",
			Phone:  "5551234567",
		}).
		Return(stored, nil)

	customer, err := s.service.Create(s.T().Context(), userID, CustomerCreateArgs{
		Name:  "Acme Ltd",
		Phone: "5551234567",
	})
	s.Require().NoError(err)
	s.Equal(stored, customer)
}

func (s *CustomerServiceTestSuite) TestUpdate_ForeignCustomer() {
	name := "New Name"
	s.mockCustomerRepo.EXPECT().
		Update(gomock.Any(), int64(5), int64(2), gomock.Any()).
		Return(nil, domain.ErrRecordNotFound)

	_, err := s.service.Update(s.T().Context(), 2, 5, CustomerUpdateArgs{Name: &name})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *CustomerServiceTestSuite) TestDelete_CascadesChildrenFirst() {
	const userID, customerID int64 = 1, 10

	s.expectDo()
	gomock.InOrder(
		s.mockCustomerRepo.EXPECT().
			FindByIDAndUser(gomock.Any(), customerID, userID).
			Return(&domain.Customer{ID: customerID, UserID: userID}, nil),
		s.mockTransactionRepo.EXPECT().
			DeleteByCustomerID(gomock.Any(), customerID).
			Return(nil),
		s.mockCustomerRepo.EXPECT().
			Delete(gomock.Any(), customerID, userID).
			Return(nil),
	)

	var published events.CustomerEvent
	s.mockPublisher.EXPECT().
		PublishCustomer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event events.CustomerEvent) error {
			published = event
			return nil
		})

	s.Require().NoError(s.service.Delete(s.T().Context(), userID, customerID))

	s.Equal(events.ActionDeleted, published.Action)
	s.Equal(customerID, published.CustomerID)
	s.Equal(userID, published.UserID)
	s.NotEmpty(published.EventID)
}

func (s *CustomerServiceTestSuite) TestDelete_PublishFailureIsNotFatal() {
	const userID, customerID int64 = 1, 10

	s.expectDo()
	gomock.InOrder(
		s.mockCustomerRepo.EXPECT().
			FindByIDAndUser(gomock.Any(), customerID, userID).
			Return(&domain.Customer{ID: customerID, UserID: userID}, nil),
		s.mockTransactionRepo.EXPECT().
			DeleteByCustomerID(gomock.Any(), customerID).
			Return(nil),
		s.mockCustomerRepo.EXPECT().
			Delete(gomock.Any(), customerID, userID).
			Return(nil),
	)
	s.mockPublisher.EXPECT().
		PublishCustomer(gomock.Any(), gomock.Any()).
		Return(errors.New("broker down"))

	// the rows are gone either way, so the caller still sees success
	s.Require().NoError(s.service.Delete(s.T().Context(), userID, customerID))
}

func (s *CustomerServiceTestSuite) TestDelete_ForeignCustomer() {
	const userID, customerID int64 = 2, 10

	s.expectDo()
	s.mockCustomerRepo.EXPECT().
		FindByIDAndUser(gomock.Any(), customerID, userID).
		Return(nil, domain.ErrRecordNotFound)
	// no delete expectations: a failed ownership check must stop the cascade

	err := s.service.Delete(s.T().Context(), userID, customerID)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *CustomerServiceTestSuite) TestAnalytics() {
	const userID int64 = 1
	customers := []domain.Customer{
		{ID: 10, UserID: userID, Name: "Owes Us"},
		{ID: 11, UserID: userID, Name: "We Owe"},
	}

	s.mockCustomerRepo.EXPECT().GetByUserID(gomock.Any(), userID).Return(customers, nil)
	s.mockTransactionRepo.EXPECT().GetByCustomerID(gomock.Any(), int64(10)).Return([]domain.Transaction{
		{Type: domain.TransactionCredit, Amount: decimal.NewFromInt(200)},
	}, nil)
	s.mockTransactionRepo.EXPECT().GetByCustomerID(gomock.Any(), int64(11)).Return([]domain.Transaction{
		{Type: domain.TransactionDebit, Amount: decimal.NewFromInt(80)},
	}, nil)

	summary, err := s.service.Analytics(s.T().Context(), userID)
	s.Require().NoError(err)

	s.True(summary.TotalReceivable.Equal(decimal.NewFromInt(200)))
	s.True(summary.TotalPayable.Equal(decimal.NewFromInt(80)))
	s.Require().Len(summary.TopReceivable, 1)
	s.Equal("Owes Us", summary.TopReceivable[0].Customer.Name)
	s.Require().Len(summary.TopPayable, 1)
	s.Equal("We Owe", summary.TopPayable[0].Customer.Name)
}
