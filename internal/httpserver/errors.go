package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MariamAbbas03/Project435/internal/domain"
	"github.com/MariamAbbas03/Project435/internal/logger"
)

// StatusFor maps a domain error kind to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrOutOfStock),
		errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Responder writes error bodies. With Legacy set every domain error is
// answered with 200, matching clients that only inspect the "error" field.
type Responder struct {
	Legacy bool
}

// Error writes {"error": message} for err. Store failures get a generic
// message; the cause is logged instead of leaked.
func (r Responder) Error(c *gin.Context, err error) {
	status := StatusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("❌ request failed",
			"path", c.FullPath(),
			"error", err,
		)
		message = "internal error"
	}

	if r.Legacy {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"error": message})
}

// BadRequest answers a request whose body or parameters failed to bind.
func (r Responder) BadRequest(c *gin.Context, err error) {
	r.Error(c, domain.InvalidInput("%s", ValidationMessage(err)))
}
