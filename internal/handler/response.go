package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/odontoweb/records-api/pkg/errors"
)

// ErrorResponse is the JSON error body returned on every failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the confirmation body returned by delete operations.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondError writes the error body for err and records it on the context so
// the logging middleware picks it up.
func RespondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode(), ErrorResponse{Error: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
