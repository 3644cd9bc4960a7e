package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vetnexa/clinic-api/internal/core"
)

// respondError maps the error taxonomy to stable status codes and puts
// the reason string in the body verbatim, so the front-end can show it.
func (h *Handler) respondError(c *gin.Context, err error) {
	var perr *core.PreconditionError

	switch {
	case errors.As(err, &perr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": perr.Reason})
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, core.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Concurrent update, please retry"})
	case errors.Is(err, core.ErrUnavailable):
		h.logger.Error("Collaborator unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		h.logger.Error("Internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// outcomeLabel buckets an error for the toggle metric.
func outcomeLabel(err error) string {
	var perr *core.PreconditionError

	switch {
	case err == nil:
		return "success"
	case errors.As(err, &perr):
		return "precondition_failed"
	case errors.Is(err, core.ErrNotFound):
		return "not_found"
	case errors.Is(err, core.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, core.ErrConflict):
		return "conflict"
	case errors.Is(err, core.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
