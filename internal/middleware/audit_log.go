package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/service"
)

// AuditLog records a user action such as saving or deleting a report.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	persistLogEntry(loggingService, auditEntry(c, "info", actionType, message, fields))
}

// AuditLogError records a failed user action.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	persistLogEntry(loggingService, auditEntry(c, "error", actionType, message, fields).WithError(err))
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
	}
	identity, _ := GetIdentity(c)
	return entry.WithIdentity(identity).WithFields(fields)
}
