//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/packaging-service/config"
)

func TestInitializeApp(t *testing.T) {
	tests := []struct {
		name     string
		cfg      func(t *testing.T) config.Config
		validate func(*testing.T, *Application)
	}{
		{
			name: "creates router with default config",
			cfg: func(*testing.T) config.Config {
				return config.Config{
					Server: config.ServerConfig{Port: "8080", RateLimit: 100, RateWindow: time.Minute},
					Cache:  config.CacheConfig{Size: 1000, TTL: 5 * time.Minute, Shards: 4},
				}
			},
			validate: func(t *testing.T, app *Application) {
				assert.NotNil(t, app.Router)
				assert.NotNil(t, app.Services.Cache)
				assert.Nil(t, app.Database)
			},
		},
		{
			name: "creates router with auth enabled",
			cfg: func(*testing.T) config.Config {
				return config.Config{
					Server: config.ServerConfig{Port: "8080"},
					Auth:   config.AuthConfig{Enabled: true, APIKeys: map[string]bool{"test-key": true}},
				}
			},
			validate: func(t *testing.T, app *Application) {
				assert.NotNil(t, app.Router)
			},
		},
		{
			name: "creates router with cache disabled",
			cfg: func(*testing.T) config.Config {
				return config.Config{
					Server: config.ServerConfig{Port: "8080"},
					Cache:  config.CacheConfig{Size: 0},
				}
			},
			validate: func(t *testing.T, app *Application) {
				assert.Nil(t, app.Services.Cache)
			},
		},
		{
			name: "serves estimates from the default catalog file",
			cfg: func(t *testing.T) config.Config {
				return config.Config{
					Server:    config.ServerConfig{Port: "8080", RateLimit: 100, RateWindow: time.Minute},
					Packaging: config.PackagingConfig{DefaultLocationID: "default", CatalogFile: writeCatalogFile(t)},
				}
			},
			validate: func(t *testing.T, app *Application) {
				body := `{"product": {"length": 10, "breadth": 10, "height": 10, "weight": 1, "quantity": 2}}`
				req := httptest.NewRequest(http.MethodPost, "/api/packaging/estimate", strings.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				w := httptest.NewRecorder()

				app.Router.ServeHTTP(w, req)

				assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
				assert.Contains(t, w.Body.String(), `"total_packaging_cost":"2.5"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := InitializeApp(tt.cfg(t))
			defer app.Close(context.Background())

			require.NotNil(t, app)
			if tt.validate != nil {
				tt.validate(t, app)
			}
		})
	}
}

func TestApplication_Close(t *testing.T) {
	t.Run("tolerates missing components", func(t *testing.T) {
		app := &Application{}
		assert.NotPanics(t, func() { app.Close(context.Background()) })
	})

	t.Run("stops the catalog cache", func(t *testing.T) {
		app := InitializeApp(config.Config{Cache: config.CacheConfig{Size: 10, TTL: time.Minute}})
		assert.NotPanics(t, func() {
			app.Close(context.Background())
			app.Close(context.Background())
		})
	})
}
