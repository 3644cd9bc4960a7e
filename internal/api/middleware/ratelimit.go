package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-clinic token bucket. Limiters are kept for
// the process lifetime; clinic counts are small enough that eviction
// is not worth the bookkeeping.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(clinicID string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[clinicID]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[clinicID] = l
		}
		return l
	}

	return func(c *gin.Context) {
		clinicID := c.GetString("clinic_id")
		if clinicID == "" {
			clinicID = c.ClientIP()
		}

		if !limiterFor(clinicID).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
