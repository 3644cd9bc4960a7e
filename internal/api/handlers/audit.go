package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListAuditLogs(c *gin.Context) {
	clinicID, ok := h.clinicID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.audit.ListRecent(c.Request.Context(), clinicID.String(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
