package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipe-favorites/backend/internal/service"
)

// RegisterRoutes registers all API routes under /api. writeLimits guard the
// mutating favorites routes.
func RegisterRoutes(router *gin.Engine, favorites service.IFavoriteService, log logrus.FieldLogger, writeLimits ...gin.HandlerFunc) {
	api := router.Group("/api")

	api.GET("/health", HealthCheck)
	api.GET("/health/ready", ReadinessCheck(favorites, log))

	NewFavoriteHandler(favorites, log).RegisterRoutes(api, writeLimits...)
}
