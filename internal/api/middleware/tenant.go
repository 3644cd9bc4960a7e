package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tenant extracts the clinic id from the parsed token claims. Every
// request past this point is scoped to exactly one clinic.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get("claims")
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Claims not found"})
			c.Abort()
			return
		}

		jwtClaims := claims.(jwt.MapClaims)

		clinicID, ok := jwtClaims["clinic_id"].(string)
		if !ok || clinicID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Clinic not found in token"})
			c.Abort()
			return
		}

		if _, err := uuid.Parse(clinicID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid clinic id in token"})
			c.Abort()
			return
		}

		c.Set("clinic_id", clinicID)

		c.Next()
	}
}
