package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/address-book/pkg/apperr"
)

// ErrorResponder is the terminal error handler: every failure recorded
// on the context via c.Error ends here and is rendered once as
// {"error": message} with the tagged status, 500 when untagged. Nothing
// below this middleware writes its own error bodies.
func ErrorResponder(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status, msg := apperr.Extract(err)

		entry := logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
			"status":     status,
		})
		if status >= 500 {
			entry.WithError(err).Error("request failed")
		} else {
			entry.Debug(msg)
		}

		if !c.Writer.Written() {
			c.JSON(status, gin.H{"error": msg})
		}
	}
}
