package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipe-favorites/backend/internal/api/apierror"
)

// Recovery turns a panicking handler into the standard 500 JSON body so a
// request is never left without an answer.
func Recovery(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				RequestLogger(c, log).WithField("panic", rec).Error("recovered from panic")
				if c.Writer.Written() {
					c.Abort()
					return
				}
				apierror.Internal(c)
			}
		}()
		c.Next()
	}
}

// NoRoute answers unknown paths with a JSON 404
func NoRoute(c *gin.Context) {
	apierror.Respond(c, apierror.RouteNotFound, "Route not found", nil)
}
