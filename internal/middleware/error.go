package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "selfbank/internal/errors"
	"selfbank/internal/logger"
)

// ErrorHandler renders the last error attached to the Gin context with
// c.Error, unless the handler already wrote a response. AppErrors keep their
// code and status; anything else becomes INTERNAL_ERROR with the cause logged
// but not returned.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := logger.With("request_id", RequestID(c), "path", c.Request.URL.Path)

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			log.Errorw("unexpected error", "error", err.Error(), "method", c.Request.Method)
			appErr = apperrors.ErrInternalServer
		} else if appErr.Internal != nil {
			log.Errorw("app error", "code", appErr.Code, "internal", appErr.Internal.Error())
		}

		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}
