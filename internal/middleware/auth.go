package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/packaging-service/internal/domain/dto"
	"github.com/guttosm/packaging-service/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
	// ClientIDKey is the context key holding the authenticated client id.
	ClientIDKey = "client_id"
)

// APIKeyAuth validates the X-API-Key header, falling back to the api_key query parameter.
// An empty validKeys disables authentication. Keys are compared by digest and accepted
// requests carry a client id derived from the key, never the key itself.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	digests := make(map[[sha256.Size]byte]string, len(validKeys))
	for key, enabled := range validKeys {
		if enabled && key != "" {
			digests[sha256.Sum256([]byte(key))] = ClientIDFromAPIKey(key)
		}
	}

	return func(c *gin.Context) {
		if len(digests) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}
		if key == "" {
			abortUnauthorized(c, i18n.ErrKeyAPIKeyRequired)
			return
		}

		clientID, ok := digests[sha256.Sum256([]byte(key))]
		if !ok {
			abortUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, messageKey string) {
	c.Header("WWW-Authenticate", `ApiKey header="`+APIKeyHeader+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, i18n.TranslateRequest(c, messageKey)).WithRequestID(GetRequestID(c)))
}

// ClientIDFromAPIKey derives a stable, non-secret client id from an API key.
func ClientIDFromAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return "key-" + hex.EncodeToString(sum[:6])
}

// GetClientID returns the authenticated client id, or "" for anonymous requests.
func GetClientID(c *gin.Context) string {
	return c.GetString(ClientIDKey)
}
