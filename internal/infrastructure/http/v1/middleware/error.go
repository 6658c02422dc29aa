package middleware

import (
	"github.com/gin-gonic/gin"

	"paneerflow/internal/core/apperror"
	"paneerflow/pkg/logger"
)

// ErrorHandler middleware transforms errors into consistent JSON responses.
// Hides internal errors from clients while logging full details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}

			body := gin.H{
				"error": appErr.Message,
				"code":  appErr.Code,
			}
			if len(appErr.Details) > 0 {
				body["details"] = appErr.Details
			}

			c.JSON(appErr.HTTPStatus, body)
			return
		}

		logger.Error(c.Request.Context(), "unhandled error",
			"error", err,
		)

		c.JSON(apperror.GetHTTPStatus(err), gin.H{
			"error": "Internal server error",
			"code":  apperror.CodeInternal,
			"details": map[string]any{
				"request_id": c.GetString("request_id"),
			},
		})
	}
}
