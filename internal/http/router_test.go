package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/packaging-service/internal/middleware"
	"github.com/guttosm/packaging-service/internal/service"
)

func newTestRouterConfig() RouterConfig {
	cfg := DefaultRouterConfig()
	cfg.EstimateService = service.NewEstimateService(service.NewPackagingCalculatorService(), nil, "default", zerolog.Nop())
	return cfg
}

func TestNewRouter(t *testing.T) {
	tests := []struct {
		name string
		cfg  RouterConfig
	}{
		{name: "default config", cfg: DefaultRouterConfig()},
		{
			name: "auth enabled",
			cfg: RouterConfig{
				RateLimit:  100,
				RateWindow: time.Minute,
				EnableAuth: true,
				APIKeys:    map[string]bool{"test-key": true},
			},
		},
		{
			name: "idempotency enabled",
			cfg: RouterConfig{
				RateLimit:         100,
				RateWindow:        time.Minute,
				EnableIdempotency: true,
			},
		},
		{
			name: "rate limiting and timeout disabled",
			cfg:  RouterConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, NewRouter(NewHealthHandler(), tt.cfg))
		})
	}
}

func TestRouter_Endpoints(t *testing.T) {
	router := NewRouter(NewHealthHandler(), newTestRouterConfig())

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{name: "healthz endpoint", method: http.MethodGet, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "readyz endpoint", method: http.MethodGet, path: "/readyz", expectedStatus: http.StatusOK},
		{name: "metrics endpoint", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
		{name: "swagger endpoint", method: http.MethodGet, path: "/swagger/index.html", expectedStatus: http.StatusOK},
		{name: "estimate without body", method: http.MethodPost, path: "/api/packaging/estimate", expectedStatus: http.StatusBadRequest},
		{
			name:           "estimate with inline catalog",
			method:         http.MethodPost,
			path:           "/api/packaging/estimate",
			body:           `{"product": {"quantity": 1}, "catalog": [{"id": "a", "available_quantity": 1}]}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "estimate without catalog source",
			method:         http.MethodPost,
			path:           "/api/packaging/estimate",
			body:           `{"product": {"quantity": 1}}`,
			expectedStatus: http.StatusServiceUnavailable,
		},
		{name: "catalog routes absent without service", method: http.MethodGet, path: "/api/locations/wh-1/packages", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_APIKeyAuth(t *testing.T) {
	cfg := newTestRouterConfig()
	cfg.EnableAuth = true
	cfg.APIKeys = map[string]bool{"secret": true}
	router := NewRouter(NewHealthHandler(), cfg)

	body := `{"product": {"quantity": 0}, "catalog": []}`
	tests := []struct {
		name           string
		apiKey         string
		expectedStatus int
	}{
		{name: "missing key", expectedStatus: http.StatusUnauthorized},
		{name: "wrong key", apiKey: "nope", expectedStatus: http.StatusUnauthorized},
		{name: "valid key", apiKey: "secret", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/packaging/estimate", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.apiKey != "" {
				req.Header.Set(middleware.APIKeyHeader, tt.apiKey)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	t.Run("health stays public", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_ClientRateLimit(t *testing.T) {
	cfg := newTestRouterConfig()
	cfg.RateLimit = 2
	cfg.RateWindow = time.Hour
	router := NewRouter(NewHealthHandler(), cfg)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/packaging/estimate",
			strings.NewReader(`{"product": {"quantity": 0}, "catalog": []}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)
	assert.Equal(t, http.StatusOK, send().Code)
	limited := send()
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_SwaggerBasicAuth(t *testing.T) {
	cfg := newTestRouterConfig()
	cfg.SwaggerUser = "docs"
	cfg.SwaggerPass = "pass"
	router := NewRouter(NewHealthHandler(), cfg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.SetBasicAuth("docs", "pass")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
