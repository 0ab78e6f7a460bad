// Package apierror holds the stable error codes carried by every JSON error
// body and the HTTP status each one maps to.
package apierror

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorCode string

const (
	InternalServerError   ErrorCode = "internal_server_error"
	MissingRequiredFields ErrorCode = "missing_required_fields"
	InvalidRecipeID       ErrorCode = "invalid_recipe_id"
	InvalidFieldType      ErrorCode = "invalid_field_type"
	FavoriteConflict      ErrorCode = "favorite_conflict"
	FavoriteNotFound      ErrorCode = "favorite_not_found"
	StoreUnavailable      ErrorCode = "store_unavailable"
	RateLimited           ErrorCode = "rate_limited"
	RouteNotFound         ErrorCode = "route_not_found"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	InternalServerError:   http.StatusInternalServerError,
	MissingRequiredFields: http.StatusBadRequest,
	InvalidRecipeID:       http.StatusBadRequest,
	InvalidFieldType:      http.StatusBadRequest,
	FavoriteConflict:      http.StatusConflict,
	FavoriteNotFound:      http.StatusNotFound,
	StoreUnavailable:      http.StatusServiceUnavailable,
	RateLimited:           http.StatusTooManyRequests,
	RouteNotFound:         http.StatusNotFound,
}

// StatusCode is the HTTP status for ec; unknown codes are server errors.
func (ec ErrorCode) StatusCode() int {
	if status, ok := errorCodeToStatusCode[ec]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (ec ErrorCode) String() string {
	return string(ec)
}

// Respond writes {success: false, error: message, code} plus any extra
// fields with the status belonging to code, and aborts the chain.
func Respond(c *gin.Context, code ErrorCode, message string, extra gin.H) {
	body := gin.H{
		"success": false,
		"error":   message,
		"code":    code,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.AbortWithStatusJSON(code.StatusCode(), body)
}

// Internal is the uniform response for unexpected faults
func Internal(c *gin.Context) {
	Respond(c, InternalServerError, "Internal server error", nil)
}
