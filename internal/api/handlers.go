package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipe-favorites/backend/internal/api/apierror"
	"github.com/pageza/recipe-favorites/backend/internal/middleware"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck is the liveness probe; it never fails.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReadinessCheck answers 503 while the store does not respond to a ping
func ReadinessCheck(store Pinger, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			middleware.RequestLogger(c, log).WithError(err).Warn("readiness check failed")
			apierror.Respond(c, apierror.StoreUnavailable, "Store unavailable", nil)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
