package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/ledger"
	"github.com/fsdevblog/ledgerbook/internal/logger"
	"github.com/fsdevblog/ledgerbook/internal/service"
	"github.com/fsdevblog/ledgerbook/internal/service/mocks"
	"github.com/fsdevblog/ledgerbook/internal/service/tokens"
	"github.com/fsdevblog/ledgerbook/internal/transport/api/testutils"
)

type CustomersHandlerTestSuite struct {
	suite.Suite
	mockCtrl            *gomock.Controller
	router              *gin.Engine
	mockCustomerService *mocks.MockCustomerServicer
	jwtSecret           []byte
}

func TestCustomersHandlerSuite(t *testing.T) {
	suite.Run(t, new(CustomersHandlerTestSuite))
}

func (s *CustomersHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCustomerService = mocks.NewMockCustomerServicer(s.mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:          logger.New(io.Discard),
		CustomerService: s.mockCustomerService,
		JWTSecretKey:    s.jwtSecret,
	})
}

func (s *CustomersHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *CustomersHandlerTestSuite) userToken(userID int64) string {
	token, err := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
	return token
}

func (s *CustomersHandlerTestSuite) jsonBody(v any) *bytes.Reader {
	raw, err := json.Marshal(v)
	s.Require().NoError(err)
	return bytes.NewReader(raw)
}

func (s *CustomersHandlerTestSuite) TestIndex() {
	const userID int64 = 1
	balances := []ledger.CustomerBalance{
		{
			Customer: domain.Customer{ID: 10, UserID: userID, Name: "Owes Us"},
			Balance:  decimal.NewFromInt(300),
		},
		{
			Customer: domain.Customer{ID: 11, UserID: userID, Name: "We Owe"},
			Balance:  decimal.NewFromInt(-120),
		},
		{
			Customer: domain.Customer{ID: 12, UserID: userID, Name: "Settled"},
			Balance:  decimal.Zero,
		},
	}

	s.mockCustomerService.EXPECT().
		ListWithBalances(gomock.Any(), userID).
		Return(balances, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + CustomersRoute,
	}, testutils.WithBearerToken(s.userToken(userID)))

	s.Equal(http.StatusOK, resp.StatusCode)

	defer resp.Body.Close() //nolint:errcheck
	var body []CustomerBalanceResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Require().Len(body, 3)

	s.Equal("Owes Us", body[0].Name)
	s.InDelta(300, body[0].Balance, 0.0001)
	s.Equal(ledger.LabelYouWillGet, body[0].Status)

	s.InDelta(-120, body[1].Balance, 0.0001)
	s.Equal(ledger.LabelYouWillGive, body[1].Status)

	s.Zero(body[2].Balance)
	s.Equal(ledger.LabelNoBalance, body[2].Status)
}

func (s *CustomersHandlerTestSuite) TestIndex_NoToken() {
	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + CustomersRoute,
	})

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *CustomersHandlerTestSuite) TestCreate() {
	const userID int64 = 1
	stored := &domain.Customer{ID: 10, UserID: userID, Name: "Acme Ltd", Phone: "5551234567"}

	s.mockCustomerService.EXPECT().
		Create(gomock.Any(), userID, service.CustomerCreateArgs{
			Name:  "Acme Ltd",
			Phone: "5551234567",
		}).
		Return(stored, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + CustomersRoute,
		Body:   s.jsonBody(CustomerCreateParams{Name: "Acme Ltd", Phone: "5551234567"}),
	}, testutils.WithJSON(), testutils.WithBearerToken(s.userToken(userID)))

	s.Equal(http.StatusCreated, resp.StatusCode)

	defer resp.Body.Close() //nolint:errcheck
	var body CustomerResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal(int64(10), body.ID)
	s.Equal("Acme Ltd", body.Name)
}

func (s *CustomersHandlerTestSuite) TestCreate_ShortPhone() {
	// binding rejects the payload, the service is never reached
	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + CustomersRoute,
		Body:   s.jsonBody(CustomerCreateParams{Name: "Acme Ltd", Phone: "555"}),
	}, testutils.WithJSON(), testutils.WithBearerToken(s.userToken(1)))

	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *CustomersHandlerTestSuite) TestUpdate() {
	const userID int64 = 1
	name := "Renamed Ltd"
	stored := &domain.Customer{ID: 10, UserID: userID, Name: name, Phone: "5551234567"}

	s.mockCustomerService.EXPECT().
		Update(gomock.Any(), userID, int64(10), service.CustomerUpdateArgs{Name: &name}).
		Return(stored, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPut,
		URL:    fmt.Sprintf("%s%s/%d", RouteGroup, CustomersRoute, 10),
		Body:   s.jsonBody(CustomerUpdateParams{Name: &name}),
	}, testutils.WithJSON(), testutils.WithBearerToken(s.userToken(userID)))

	s.Equal(http.StatusOK, resp.StatusCode)
}

// A customer belonging to someone else is indistinguishable from a missing one.
func (s *CustomersHandlerTestSuite) TestUpdate_ForeignCustomer() {
	name := "Renamed Ltd"

	s.mockCustomerService.EXPECT().
		Update(gomock.Any(), int64(2), int64(10), gomock.Any()).
		Return(nil, domain.ErrRecordNotFound)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPut,
		URL:    fmt.Sprintf("%s%s/%d", RouteGroup, CustomersRoute, 10),
		Body:   s.jsonBody(CustomerUpdateParams{Name: &name}),
	}, testutils.WithJSON(), testutils.WithBearerToken(s.userToken(2)))

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *CustomersHandlerTestSuite) TestDelete() {
	const userID int64 = 1

	s.mockCustomerService.EXPECT().
		Delete(gomock.Any(), userID, int64(10)).
		Return(nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodDelete,
		URL:    fmt.Sprintf("%s%s/%d", RouteGroup, CustomersRoute, 10),
	}, testutils.WithBearerToken(s.userToken(userID)))

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *CustomersHandlerTestSuite) TestDelete_MalformedID() {
	// no Delete expectation: an unparsable id never reaches the service
	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodDelete,
		URL:    RouteGroup + CustomersRoute + "/abc",
	}, testutils.WithBearerToken(s.userToken(1)))

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *CustomersHandlerTestSuite) TestAnalytics() {
	const userID int64 = 1
	summary := &ledger.Summary{
		TotalReceivable: decimal.NewFromInt(300),
		TotalPayable:    decimal.NewFromInt(120),
		TopReceivable: []ledger.CustomerBalance{
			{Customer: domain.Customer{ID: 10, Name: "Owes Us"}, Balance: decimal.NewFromInt(300)},
		},
		TopPayable: []ledger.CustomerBalance{
			{Customer: domain.Customer{ID: 11, Name: "We Owe"}, Balance: decimal.NewFromInt(-120)},
		},
	}

	s.mockCustomerService.EXPECT().
		Analytics(gomock.Any(), userID).
		Return(summary, nil)

	resp := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + AnalyticsRoute,
	}, testutils.WithBearerToken(s.userToken(userID)))

	s.Equal(http.StatusOK, resp.StatusCode)

	defer resp.Body.Close() //nolint:errcheck
	var body AnalyticsResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))

	s.InDelta(300, body.TotalReceivable, 0.0001)
	s.InDelta(120, body.TotalPayable, 0.0001)
	s.Require().Len(body.TopReceivable, 1)
	s.Equal("Owes Us", body.TopReceivable[0].Name)
	s.Require().Len(body.TopPayable, 1)
	s.Equal(ledger.LabelYouWillGive, body.TopPayable[0].Status)
}
