package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vetnexa/clinic-api/internal/core"
)

type ToggleModuleRequest struct {
	Module  string `json:"module" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"required"`
}

func (h *Handler) GetFlags(c *gin.Context) {
	clinicID, ok := h.clinicID(c)
	if !ok {
		return
	}

	caps, err := h.config.GetFlags(c.Request.Context(), clinicID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, caps)
}

func (h *Handler) UpdateIdentity(c *gin.Context) {
	clinicID, ok := h.clinicID(c)
	if !ok {
		return
	}

	var upd core.IdentityUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.config.UpdateIdentity(c.Request.Context(), clinicID, c.GetString("user_id"), upd)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, identity)
}

func (h *Handler) ToggleModule(c *gin.Context) {
	clinicID, ok := h.clinicID(c)
	if !ok {
		return
	}

	var req ToggleModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caps, err := h.config.ToggleModule(c.Request.Context(), clinicID, c.GetString("user_id"), req.Module, *req.Enabled)
	h.metrics.RecordToggle(req.Module, *req.Enabled, outcomeLabel(err))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, caps)
}
