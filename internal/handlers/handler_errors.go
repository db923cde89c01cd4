package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/teaminfinity/expense_management/internal/apperrors"
)

// ErrorResponse is the generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondBindingError turns a ShouldBind failure into a 400 response. Field
// validation failures are reported per field; anything else (malformed JSON,
// type mismatches) gets a generic message.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, len(verrs))
		for i, fe := range verrs {
			messages[i] = fmt.Sprintf("field '%s' failed validation '%s'", fe.Field(), fe.Tag())
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: strings.Join(messages, "; ")})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
}

// respondError maps a service error to its HTTP status. The fallback message
// is used for unexpected errors so internals never leak to clients.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token expired"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
