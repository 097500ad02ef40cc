package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/ledgerbook/internal/domain"
	"github.com/fsdevblog/ledgerbook/internal/service"
	"github.com/fsdevblog/ledgerbook/internal/transport/api/middlewares"
)

// getUserIDFromContext reads the current user id stored by
// middlewares.AuthRequired. Returns 0 when absent.
func getUserIDFromContext(c *gin.Context) int64 {
	value, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return 0
	}
	userID, ok := value.(int64)
	if !ok {
		return 0
	}
	return userID
}

// parseIDParam parses a numeric path parameter. A malformed id aborts with
// 404: an id that cannot exist is indistinguishable from one that does not.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// abortWithServiceError maps service layer failures onto http statuses:
// validation → 422 with per-field messages, not found → 404, the rest → 500.
func abortWithServiceError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"errors": vErr.Fields})
	case errors.Is(err, domain.ErrRecordNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
