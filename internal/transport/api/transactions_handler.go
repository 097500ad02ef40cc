package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/service"
)

type TransactionsHandler struct {
	transactionSvs TransactionServicer
}

func NewTransactionsHandler(transactionSvs TransactionServicer) *TransactionsHandler {
	return &TransactionsHandler{
		transactionSvs: transactionSvs,
	}
}

type TransactionResponse struct {
	ID          int64                  `json:"id"`
	CustomerID  int64                  `json:"customerId"`
	Type        domain.TransactionType `json:"type"`
	Amount      float64                `json:"amount"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func newTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID,
		CustomerID:  transaction.CustomerID,
		Type:        transaction.Type,
		Amount:      transaction.Amount.InexactFloat64(),
		Description: transaction.Description,
		Date:        transaction.Date,
		CreatedAt:   transaction.CreatedAt,
	}
}

// Index GET RouteGroup + CustomerTransactionsRoute. Returns the customer and
// its transactions, newest first.
func (h *TransactionsHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	customer, transactions, err := h.transactionSvs.ListByCustomer(reqCtx, currentUserID, customerID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		response[i] = newTransactionResponse(&transaction)
	}
	c.JSON(http.StatusOK, gin.H{
		"customer":     newCustomerResponse(customer),
		"transactions": response,
	})
}

// TransactionCreateParams carries the raw candidate; all admission rules
// (type enum, amount > 0, description length, date bounds) live in the
// service validator so their failures come back as per-field 422 responses.
type TransactionCreateParams struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        *string         `json:"date"`
}

// Create POST RouteGroup + CustomerTransactionsRoute.
func (h *TransactionsHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params TransactionCreateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transaction, err := h.transactionSvs.Add(reqCtx, currentUserID, customerID, service.TransactionCandidate{
		Type:        params.Type,
		Amount:      params.Amount,
		Description: params.Description,
		Date:        params.Date,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTransactionResponse(transaction))
}

type TransactionUpdateParams struct {
	Type        *string          `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Date        *string          `json:"date"`
}

// Update PUT RouteGroup + CustomerTransactionRoute. Partial update: absent
// fields keep their stored values.
func (h *TransactionsHandler) Update(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(c, "transactionId")
	if !ok {
		return
	}

	var params TransactionUpdateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transaction, err := h.transactionSvs.Update(
		reqCtx, currentUserID, customerID, transactionID,
		service.TransactionPatch{
			Type:        params.Type,
			Amount:      params.Amount,
			Description: params.Description,
			Date:        params.Date,
		},
	)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTransactionResponse(transaction))
}

// Delete DELETE RouteGroup + CustomerTransactionRoute.
func (h *TransactionsHandler) Delete(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(c, "transactionId")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.transactionSvs.Delete(reqCtx, currentUserID, customerID, transactionID); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
}
