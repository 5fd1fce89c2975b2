package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/sanda/internal/domain/errors"
	"github.com/polkiloo/sanda/internal/server/http/dto"
)

// StatusFor maps a use case error to an HTTP status code.
func StatusFor(err error) int {
	if _, ok := domainErrors.IsValidationError(err); ok {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotAvailable),
		errors.Is(err, domainErrors.ErrConflict),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidAmount), errors.Is(err, domainErrors.ErrInvalidStatus):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error as a failed result. Internal causes are logged by the
// request logger through c.Error and never leaked to the client.
func fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, dto.Fail("internal error", nil))
		return
	}
	if ve, ok := domainErrors.IsValidationError(err); ok {
		c.JSON(status, dto.Fail(ve.Message, ve.Details))
		return
	}
	c.JSON(status, dto.Fail(err.Error(), nil))
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Fail(message, nil))
}

func success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.OK(message, data))
}

// pathID parses a positive integer path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func queryBool(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(c.Query(name)))
	return v
}
