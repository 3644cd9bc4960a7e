package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vetnexa/clinic-api/internal/core"
	"github.com/vetnexa/clinic-api/internal/metrics"
)

// FlagReader resolves the current flag set for a clinic; the cached
// flags view satisfies it.
type FlagReader interface {
	GetFlags(ctx context.Context, clinicID uuid.UUID) (*core.Capabilities, error)
}

// featureFlags maps route-level feature labels to capability flags.
var featureFlags = map[string]string{
	"INTERNMENT":  "hasInternment",
	"FISCAL":      "hasFiscal",
	"AGENDA":      "hasAgenda",
	"PET_SHOP":    "hasPetshopService",
	"AI_ANALYSIS": "hasAI",
}

// RequireFeature blocks requests to routes of a module that the clinic
// has not enabled.
func RequireFeature(feature string, flags FlagReader, collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		flagName, ok := featureFlags[feature]
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unknown feature gate"})
			c.Abort()
			return
		}

		clinicID, err := uuid.Parse(c.GetString("clinic_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid clinic id"})
			c.Abort()
			return
		}

		caps, err := flags.GetFlags(c.Request.Context(), clinicID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Clinic not found"})
			} else {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to resolve clinic features"})
			}
			c.Abort()
			return
		}

		if enabled, _ := caps.Flag(flagName); !enabled {
			if collector != nil {
				collector.RecordFeatureDenied(feature)
			}
			c.JSON(http.StatusForbidden, gin.H{
				"error": fmt.Sprintf("Feature %s is not enabled for this clinic.", feature),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
