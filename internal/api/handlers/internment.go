package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vetnexa/clinic-api/internal/internment"
)

type AdmitRequest struct {
	PetID     string `json:"pet_id" binding:"required,uuid"`
	Reason    string `json:"reason" binding:"required"`
	BedNumber string `json:"bed_number"`
}

func (h *Handler) AdmitPatient(c *gin.Context) {
	clinicID, ok := h.clinicID(c)
	if !ok {
		return
	}

	var req AdmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	petID, err := uuid.Parse(req.PetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pet id"})
		return
	}

	stay, err := h.internment.Admit(c.Request.Context(), clinicID, c.GetString("user_id"), internment.AdmitInput{
		PetID:     petID,
		Reason:    req.Reason,
		BedNumber: req.BedNumber,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stay)
}

func (h *Handler) DischargePatient(c *gin.Context) {
	clinicID, ok := h.clinicID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid internment id"})
		return
	}

	stay, err := h.internment.Discharge(c.Request.Context(), clinicID, c.GetString("user_id"), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stay)
}

func (h *Handler) ListActiveInternments(c *gin.Context) {
	clinicID, ok := h.clinicID(c)
	if !ok {
		return
	}

	stays, err := h.internment.Active(c.Request.Context(), clinicID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"internments": stays, "count": len(stays)})
}
