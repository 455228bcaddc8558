package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hotel-backoffice/utils"
)

const RequestIDHeader = "X-Request-ID"

// Logger tags each request with an id, stores a scoped entry for handlers and
// logs one line when the request finishes.
func Logger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)

		entry := log.WithField("request_id", reqID)
		c.Set(utils.LoggerKey, entry)

		c.Next()

		fields := logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		}
		if uid, ok := c.Get(ContextUserID); ok {
			fields["user_id"] = uid
		}
		e := entry.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			e.Error("request")
		case status >= 400:
			e.Warn("request")
		default:
			e.Info("request")
		}
	}
}
