package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/service"
)

// LocationIDKey is the context key holding the location a request works on.
const LocationIDKey = "location_id"

// SetLocationID records the location a request works on for request and audit logs.
func SetLocationID(c *gin.Context, locationID string) {
	if locationID != "" {
		c.Set(LocationIDKey, locationID)
	}
}

// GetLocationID returns the location recorded for the request, falling back to the
// location_id route parameter.
func GetLocationID(c *gin.Context) string {
	if v, exists := c.Get(LocationIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return c.Param("location_id")
}

// AuditLog logs a client action for audit purposes.
// It is used for catalog modifications and estimate requests.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	storeAuditEntry(loggingService, newAuditEntry(c, model.LevelInfo, actionType, message, fields))
}

// AuditLogError logs a failed client action for audit purposes.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := newAuditEntry(c, model.LevelError, actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	storeAuditEntry(loggingService, entry)
}

func newAuditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ClientID:   GetClientID(c),
		LocationID: GetLocationID(c),
		ActionType: actionType,
		Fields:     fields,
	}
}

// storeAuditEntry hands the entry to the async logger, or writes it from a goroutine
// when none is installed.
func storeAuditEntry(loggingService service.LoggingService, entry *model.LogEntry) {
	if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
		asyncLogger.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
