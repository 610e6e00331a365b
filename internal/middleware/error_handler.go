package middleware

import (
	"github.com/gin-gonic/gin"
	"lan_relay/pkg/errors"
)

// ErrorHandler renders the last error attached with c.Error as {"error": msg}.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last()
		statusCode := errors.HTTPStatusFromError(err.Err)

		c.JSON(statusCode, gin.H{
			"error": err.Error(),
		})
	}
}
