package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fightstation/backend/internal/matching"
)

// StatusCode converts domain/infra errors into HTTP status codes. Keeps the
// service layer clean by centralizing the mapping.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, matching.ErrSubjectNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound

	case errors.Is(err, matching.ErrInvalidCriteria),
		errors.Is(err, matching.ErrUnknownKind):
		return http.StatusBadRequest

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the mapped status with a JSON error envelope. Internal
// errors are masked; everything else bubbles its message for the app to show.
func Respond(c *gin.Context, err error) {
	code := StatusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(code, gin.H{"error": msg})
}

// BadRequest writes a 400 with the given message. Use for input validation
// in the service layer.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
