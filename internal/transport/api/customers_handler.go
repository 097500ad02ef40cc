package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/ledger"
	"github.com/fsdevblog/ledgerbook/internal/service"
)

type CustomersHandler struct {
	customerSvs CustomerServicer
}

func NewCustomersHandler(customerSvs CustomerServicer) *CustomersHandler {
	return &CustomersHandler{
		customerSvs: customerSvs,
	}
}

type CustomerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

func newCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
	}
}

// CustomerBalanceResponse adds the derived balance and its presentation
// label to the customer fields.
type CustomerBalanceResponse struct {
	CustomerResponse
	Balance float64 `json:"balance"`
	Status  string  `json:"status"`
}

func newCustomerBalanceResponse(cb ledger.CustomerBalance) CustomerBalanceResponse {
	return CustomerBalanceResponse{
		CustomerResponse: newCustomerResponse(&cb.Customer),
		Balance:          cb.Balance.InexactFloat64(),
		Status:           ledger.Classify(cb.Balance).Label,
	}
}

// Index GET RouteGroup + CustomersRoute.
func (h *CustomersHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balances, err := h.customerSvs.ListWithBalances(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]CustomerBalanceResponse, len(balances))
	for i, cb := range balances {
		response[i] = newCustomerBalanceResponse(cb)
	}
	c.JSON(http.StatusOK, response)
}

type CustomerCreateParams struct {
	Name  string `binding:"required,min=2"  json:"name"`
	Phone string `binding:"required,min=10" json:"phone"`
}

// Create POST RouteGroup + CustomersRoute.
func (h *CustomersHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params CustomerCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	customer, err := h.customerSvs.Create(reqCtx, currentUserID, service.CustomerCreateArgs{
		Name:  params.Name,
		Phone: params.Phone,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCustomerResponse(customer))
}

type CustomerUpdateParams struct {
	Name  *string `binding:"omitempty,min=2"  json:"name"`
	Phone *string `binding:"omitempty,min=10" json:"phone"`
}

// Update PUT RouteGroup + CustomerRoute. Partial update.
func (h *CustomersHandler) Update(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params CustomerUpdateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	customer, err := h.customerSvs.Update(reqCtx, currentUserID, customerID, service.CustomerUpdateArgs{
		Name:  params.Name,
		Phone: params.Phone,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCustomerResponse(customer))
}

// Delete DELETE RouteGroup + CustomerRoute. Removes the customer together
// with its transactions.
func (h *CustomersHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.customerSvs.Delete(reqCtx, currentUserID, customerID); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "customer and related transactions deleted"})
}

type AnalyticsResponse struct {
	TotalReceivable float64                   `json:"totalReceivable"`
	TotalPayable    float64                   `json:"totalPayable"`
	TopReceivable   []CustomerBalanceResponse `json:"topReceivable"`
	TopPayable      []CustomerBalanceResponse `json:"topPayable"`
}

// Analytics GET RouteGroup + AnalyticsRoute.
func (h *CustomersHandler) Analytics(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	summary, err := h.customerSvs.Analytics(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := AnalyticsResponse{
		TotalReceivable: summary.TotalReceivable.InexactFloat64(),
		TotalPayable:    summary.TotalPayable.InexactFloat64(),
		TopReceivable:   make([]CustomerBalanceResponse, len(summary.TopReceivable)),
		TopPayable:      make([]CustomerBalanceResponse, len(summary.TopPayable)),
	}
	for i, cb := range summary.TopReceivable {
		response.TopReceivable[i] = newCustomerBalanceResponse(cb)
	}
	for i, cb := range summary.TopPayable {
		response.TopPayable[i] = newCustomerBalanceResponse(cb)
	}

	c.JSON(http.StatusOK, response)
}
