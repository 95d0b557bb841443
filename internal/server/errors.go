package server

import (
	"errors"
	"net/http"

	"github.com/aquametric/aquatrack/internal/principal"
	trackerdomain "github.com/aquametric/aquatrack/internal/tracker/domain"
	treasurydomain "github.com/aquametric/aquatrack/internal/treasury/domain"
	"github.com/gin-gonic/gin"
)

type errorPayload struct {
	Code    uint32 `json:"code,omitempty"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

// ErrorHandlingMiddleware turns the last collected error into the response.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var trackerErr *trackerdomain.Error
	if errors.As(err, &trackerErr) {
		return trackerStatus(trackerErr), errorPayload{
			Code:    trackerErr.Code,
			Reason:  trackerErr.Reason,
			Message: "tracker rejected the operation",
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, treasurydomain.ErrInvalidAmount),
		errors.Is(err, treasurydomain.ErrInvalidPrincipal),
		errors.Is(err, principal.ErrEmptyPrincipal),
		errors.Is(err, principal.ErrPrincipalTooLong):
		return http.StatusBadRequest, errorPayload{Reason: err.Error(), Message: "invalid request"}
	case errors.Is(err, treasurydomain.ErrAccountNotFound):
		return http.StatusNotFound, errorPayload{Reason: err.Error(), Message: "account not found"}
	case errors.Is(err, treasurydomain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, errorPayload{Reason: err.Error(), Message: "insufficient funds"}
	default:
		return http.StatusInternalServerError, errorPayload{Reason: "internal_error", Message: "internal server error"}
	}
}

func trackerStatus(err *trackerdomain.Error) int {
	switch err {
	case trackerdomain.ErrNotAuthorized, trackerdomain.ErrUpdateNotAllowed:
		return http.StatusForbidden
	case trackerdomain.ErrFarmNotFound, trackerdomain.ErrInvalidFarmID:
		return http.StatusNotFound
	case trackerdomain.ErrFarmAlreadyRegistered,
		trackerdomain.ErrLogAlreadyExists,
		trackerdomain.ErrOracleNotVerified,
		trackerdomain.ErrMaxLogsExceeded:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
