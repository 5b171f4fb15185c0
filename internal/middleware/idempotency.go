package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/packaging-service/internal/domain/dto"
	"github.com/guttosm/packaging-service/internal/i18n"
)

const (
	// IdempotencyKeyHeader is the HTTP header carrying the client's idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks responses served from the idempotency cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long a completed response can be replayed.
	IdempotencyKeyTTL = 5 * time.Minute
)

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   *idempotencyCache
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   newIdempotencyCache(IdempotencyKeyTTL),
		TTL:     IdempotencyKeyTTL,
		Enabled: true,
	}
}

// Idempotency replays the stored response of a POST, PUT or PATCH that repeats an
// Idempotency-Key already used by the same client on the same route.
// Reusing a key with a different body, or while the first request is still running,
// is answered with 409. Only 2xx responses are stored.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if !isIdempotentMethod(c.Request.Method) {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		scope := scopeKey(key, GetClientID(c), c.Request)
		fingerprint := bodyFingerprint(c.Request)

		existing, reserved := cfg.Cache.Reserve(scope, fingerprint)
		if !reserved {
			switch {
			case existing.Fingerprint != fingerprint:
				abortIdempotencyConflict(c, i18n.ErrKeyIdempotencyKeyReused)
			case existing.Response == nil:
				abortIdempotencyConflict(c, i18n.ErrKeyIdempotencyInProgress)
			default:
				replay(c, existing.Response)
			}
			return
		}

		writer := &capturingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			cfg.Cache.Complete(scope, &cachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			})
			return
		}
		cfg.Cache.Release(scope)
	}
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

func replay(c *gin.Context, resp *cachedResponse) {
	c.Header(IdempotencyReplayedHeader, "true")
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
	c.Abort()
}

func abortIdempotencyConflict(c *gin.Context, key string) {
	c.AbortWithStatusJSON(http.StatusConflict,
		dto.NewError(dto.ErrCodeConflict, i18n.TranslateRequest(c, key)).WithRequestID(GetRequestID(c)))
}

// scopeKey identifies an idempotency key within one client's use of one route.
func scopeKey(idempotencyKey, clientID string, req *http.Request) string {
	hasher := sha256.New()
	for _, part := range []string{idempotencyKey, clientID, req.Method, req.URL.Path} {
		hasher.Write([]byte(part))
		hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// bodyFingerprint hashes the request body and restores it for the handler.
func bodyFingerprint(req *http.Request) string {
	hasher := sha256.New()
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(body))
		hasher.Write(body)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// capturingWriter copies the response body while writing it through.
type capturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
