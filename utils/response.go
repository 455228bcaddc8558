package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotel-backoffice/billing"
)

// LoggerKey is the gin context key holding the request-scoped *logrus.Entry.
const LoggerKey = "logger"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONMessage(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{"success": true, "message": message, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// Log returns the request logger set by the logging middleware.
func Log(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(LoggerKey); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// StatusFor maps an error to the HTTP status of its kind.
func StatusFor(err error) int {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}
	switch billing.KindOf(err) {
	case billing.KindValidation:
		return http.StatusBadRequest
	case billing.KindNotFound:
		return http.StatusNotFound
	case billing.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the error envelope. Internal errors are logged and
// answered with a generic message.
func RespondError(c *gin.Context, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		Log(c).WithError(err).Error("request failed")
		JSONError(c, code, "Internal server error")
		return
	}
	var be *billing.Error
	if errors.As(err, &be) && be.Msg != "" {
		msg := be.Msg
		if be.Err != nil && be.Kind == billing.KindConflict {
			msg = be.Msg + ": " + be.Err.Error()
		}
		JSONError(c, code, msg)
		return
	}
	JSONError(c, code, err.Error())
}
