package response

import (
	"errors"
	"log/slog"
	"net/http"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError writes the error envelope for err, choosing the status from the
// domain error kind it wraps. Unclassified errors are logged and reported as
// a generic 500.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrConflict):
		Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"error", err,
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
		)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// BindError reports a request body or query that failed binding, listing
// offending fields when the failure came from validation tags.
func BindError(c *gin.Context, err error) {
	if fields := validator.Fields(err); len(fields) > 0 {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", fields)
		return
	}
	Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}
