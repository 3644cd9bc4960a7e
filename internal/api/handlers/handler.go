package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vetnexa/clinic-api/internal/audit"
	"github.com/vetnexa/clinic-api/internal/clinicconfig"
	"github.com/vetnexa/clinic-api/internal/internment"
	"github.com/vetnexa/clinic-api/internal/metrics"
	"github.com/vetnexa/clinic-api/internal/storage/postgres"
)

type Handler struct {
	config     *clinicconfig.Service
	internment *internment.Service
	audit      *audit.Recorder
	db         *postgres.DB
	metrics    *metrics.Collector
	logger     *zap.Logger
}

func NewHandler(config *clinicconfig.Service, stays *internment.Service, audit *audit.Recorder, db *postgres.DB, collector *metrics.Collector, logger *zap.Logger) *Handler {
	return &Handler{
		config:     config,
		internment: stays,
		audit:      audit,
		db:         db,
		metrics:    collector,
		logger:     logger,
	}
}

// clinicID pulls the clinic scope the tenant middleware attached. A
// missing or malformed id means the middleware chain is broken, so the
// request is rejected rather than served unscoped.
func (h *Handler) clinicID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("clinic_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No clinic context"})
		return uuid.Nil, false
	}
	return id, true
}
