package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/packaging-service/internal/domain/model"
	"github.com/guttosm/packaging-service/internal/logger"
	"github.com/guttosm/packaging-service/internal/service"
)

// unloggedPaths are probe and scrape endpoints hit too often to be worth storing.
var unloggedPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestLogger logs every request and, when loggingService is set, stores it in the request log.
// Entries go through the async logger when one is installed.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if unloggedPaths[path] {
			return
		}

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		level := levelForStatus(statusCode)
		errMsg := c.Errors.ByType(gin.ErrorTypeAny).String()

		l := logger.Logger()
		event := l.WithLevel(level).
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent())
		if clientID := GetClientID(c); clientID != "" {
			event = event.Str("client_id", clientID)
		}
		if locationID := GetLocationID(c); locationID != "" {
			event = event.Str("location_id", locationID)
		}
		if errMsg != "" {
			event = event.Str("error", errMsg)
		}
		event.Msg("HTTP request")

		if loggingService == nil {
			return
		}

		entry := &model.LogEntry{
			Timestamp:  start.UTC(),
			Level:      level.String(),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       path,
			StatusCode: statusCode,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Error:      errMsg,
			ClientID:   GetClientID(c),
			LocationID: GetLocationID(c),
		}

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
}

// levelForStatus maps a response status to the level it is logged at.
func levelForStatus(statusCode int) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
