package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/packaging-service/internal/domain/dto"
	"github.com/guttosm/packaging-service/internal/i18n"
	"github.com/guttosm/packaging-service/internal/logger"
)

// ErrorHandler logs errors attached to the gin context and answers the request when
// the handler wrote nothing. An error status already set by the handler is kept;
// anything else becomes a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := GetRequestID(c)
		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}

		l := logger.Logger()
		l.Error().
			Str("request_id", requestID).
			Str("error", c.Errors.Last().Error()).
			Int("status_code", status).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Str("client_id", GetClientID(c)).
			Str("location_id", GetLocationID(c)).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}
		message := i18n.TranslateRequest(c, i18n.KeyForStatus(status))
		c.JSON(status, dto.NewError(dto.ErrCodeFromStatus(status), message).WithRequestID(requestID))
	}
}
