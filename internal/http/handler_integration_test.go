//go:build integration

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/packaging-service/internal/circuitbreaker"
	"github.com/guttosm/packaging-service/internal/domain/dto"
	"github.com/guttosm/packaging-service/internal/repository"
	"github.com/guttosm/packaging-service/internal/service"
	"github.com/guttosm/packaging-service/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type integrationEnv struct {
	router *gin.Engine
	db     *repository.MongoDB
}

func setupIntegrationEnv(t *testing.T, cfg RouterConfig) *integrationEnv {
	t.Helper()

	db, err := repository.NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		_ = db.Database.Drop(ctx)
		_ = db.Close(ctx)
	})

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(
		repository.NewLogsRepository(db),
		circuitbreaker.New(circuitbreaker.DefaultConfig()),
	)
	packageTypes := repository.NewPackageTypesRepositoryWithCircuitBreaker(
		repository.NewPackageTypesRepository(db),
		circuitbreaker.New(circuitbreaker.DefaultConfig()),
	)

	snapshots := service.NewShardedCache(100, time.Minute, 4)
	t.Cleanup(snapshots.Stop)

	catalogs := service.NewCatalogService(packageTypes, service.WithCatalogCache(snapshots))
	estimates := service.NewEstimateService(service.NewPackagingCalculatorService(), catalogs, "default", zerolog.Nop())

	cfg.LoggingService = service.NewLoggingService(logsRepo)
	cfg.EstimateService = estimates
	cfg.CatalogService = catalogs

	healthHandler := NewHealthHandler()
	healthHandler.RegisterChecker("mongodb", HealthCheckFunc(db.HealthCheck))
	healthHandler.RegisterCircuitBreaker("package_types", packageTypes.GetCircuitBreaker())

	return &integrationEnv{router: NewRouter(healthHandler, cfg), db: db}
}

func (e *integrationEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *integrationEnv) createPackageType(t *testing.T, locationID string, body map[string]interface{}) dto.PackageTypeResponse {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/locations/"+locationID+"/packages", body, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp envelope[dto.PackageTypeResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestIntegration_CatalogLifecycle(t *testing.T) {
	env := setupIntegrationEnv(t, DefaultRouterConfig())

	small := env.createPackageType(t, "wh-1", map[string]interface{}{
		"name": "Small Box", "type": "BOX",
		"length": "20", "breadth": "20", "height": "20",
		"max_weight": "5", "price_per_unit": "1.25", "available_quantity": 2,
	})
	large := env.createPackageType(t, "wh-1", map[string]interface{}{
		"name": "Large Box", "type": "BOX",
		"length": "50", "breadth": "40", "height": "40",
		"max_weight": "25", "price_per_unit": "3", "available_quantity": 5,
	})

	assert.Equal(t, 1, small.Version)
	assert.True(t, decimal.RequireFromString("1.25").Equal(small.PricePerUnit))

	t.Run("duplicate name is rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/locations/wh-1/packages", map[string]interface{}{
			"name": "Small Box", "price_per_unit": "1",
		}, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("list returns creation order", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/locations/wh-1/packages", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp envelope[[]dto.PackageTypeResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 2)
		assert.Equal(t, small.ID, resp.Data[0].ID)
		assert.Equal(t, large.ID, resp.Data[1].ID)
	})

	t.Run("estimate uses stored catalog", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/packaging/estimate", map[string]interface{}{
			"location_id": "wh-1",
			"product":     map[string]interface{}{"length": 10, "breadth": 10, "height": 10, "weight": 2, "quantity": 3},
		}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp envelope[dto.EstimateResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "wh-1", resp.Data.LocationID)
		assert.Equal(t, 3, resp.Data.TotalPackagesUsed)
		assert.True(t, decimal.RequireFromString("5.5").Equal(resp.Data.TotalPackagingCost))
		assert.True(t, resp.Data.CanPackAllItems)
	})

	t.Run("stock update invalidates cached catalog", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/locations/wh-1/packages/"+small.ID+"/stock", map[string]interface{}{
			"available_quantity": 0,
		}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated envelope[dto.PackageTypeResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, 0, updated.Data.AvailableQuantity)
		assert.Equal(t, 2, updated.Data.Version)

		w = env.do(t, http.MethodPost, "/api/packaging/estimate", map[string]interface{}{
			"location_id": "wh-1",
			"product":     map[string]interface{}{"length": 10, "breadth": 10, "height": 10, "weight": 2, "quantity": 3},
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp envelope[dto.EstimateResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data.PackagesUsed, 1)
		assert.Equal(t, large.ID, resp.Data.PackagesUsed[0].PackageID)
		assert.True(t, decimal.RequireFromString("9").Equal(resp.Data.TotalPackagingCost))
	})

	t.Run("deleted package type leaves the catalog", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/locations/wh-1/packages/"+large.ID, nil, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = env.do(t, http.MethodDelete, "/api/locations/wh-1/packages/"+large.ID, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = env.do(t, http.MethodPost, "/api/packaging/estimate", map[string]interface{}{
			"location_id": "wh-1",
			"product":     map[string]interface{}{"length": 10, "breadth": 10, "height": 10, "weight": 2, "quantity": 1},
		}, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp envelope[dto.EstimateResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Data.FitsAnyPackage)
		assert.False(t, resp.Data.CanPackAllItems)
		assert.Equal(t, service.NoteNoPackagesInStock, resp.Data.Note)
	})

	t.Run("locations are isolated", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/locations/wh-2/packages", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp envelope[[]dto.PackageTypeResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Data)
	})
}

func TestIntegration_MultiEstimateSharesStock(t *testing.T) {
	env := setupIntegrationEnv(t, DefaultRouterConfig())

	env.createPackageType(t, "wh-1", map[string]interface{}{
		"name": "Small Box", "length": "20", "breadth": "20", "height": "20",
		"max_weight": "5", "price_per_unit": "1", "available_quantity": 3,
	})

	w := env.do(t, http.MethodPost, "/api/packaging/estimate/multi", map[string]interface{}{
		"location_id": "wh-1",
		"products": []map[string]interface{}{
			{"product_id": "a", "length": 5, "breadth": 5, "height": 5, "weight": 1, "quantity": 2},
			{"product_id": "b", "length": 5, "breadth": 5, "height": 5, "weight": 1, "quantity": 2},
		},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp envelope[dto.MultiEstimateResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.CanPackAllItems)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, resp.Data.PackedItemsByProduct)
	assert.Equal(t, 3, resp.Data.TotalPackagesUsed)
	assert.Empty(t, resp.Data.UnfitProducts)
}

func TestIntegration_RateLimiting(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.RateLimit = 5
	cfg.RateWindow = time.Minute
	env := setupIntegrationEnv(t, cfg)

	body := map[string]interface{}{
		"product": map[string]interface{}{"quantity": 1},
		"catalog": []map[string]interface{}{{"id": "p", "price_per_unit": "1", "available_quantity": 1}},
	}

	for i := 0; i < 5; i++ {
		w := env.do(t, http.MethodPost, "/api/packaging/estimate", body, nil)
		assert.Equal(t, http.StatusOK, w.Code, "Request %d", i+1)
	}

	w := env.do(t, http.MethodPost, "/api/packaging/estimate", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = env.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIntegration_APIKeyAuth(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.EnableAuth = true
	cfg.APIKeys = map[string]bool{"valid-key": true}
	env := setupIntegrationEnv(t, cfg)

	t.Run("missing API key", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/locations/wh-1/packages", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid API key", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/locations/wh-1/packages", nil, map[string]string{"X-API-Key": "invalid-key"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid API key records creator", func(t *testing.T) {
		created := env.createPackageTypeWithKey(t, "valid-key")
		assert.NotEmpty(t, created.CreatedBy)
	})

	t.Run("readiness reports dependencies", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/readyz", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		checks, ok := resp["checks"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, checks, "mongodb")
		assert.Contains(t, checks, "package_types_circuit")
	})
}

func (e *integrationEnv) createPackageTypeWithKey(t *testing.T, key string) dto.PackageTypeResponse {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/locations/wh-1/packages", map[string]interface{}{
		"name": "Keyed Box", "price_per_unit": "2", "available_quantity": 1,
	}, map[string]string{"X-API-Key": key})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp envelope[dto.PackageTypeResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestIntegration_RequestsAreLogged(t *testing.T) {
	env := setupIntegrationEnv(t, DefaultRouterConfig())
	ctx := context.Background()

	w := env.do(t, http.MethodPost, "/api/packaging/estimate", map[string]interface{}{
		"product": map[string]interface{}{"quantity": 1},
		"catalog": []map[string]interface{}{{"id": "p", "price_per_unit": "1", "available_quantity": 1}},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	logsRepo := repository.NewLogsRepository(env.db)
	require.Eventually(t, func() bool {
		logs, err := logsRepo.Query(ctx, repository.LogQueryOptions{Path: "/api/packaging/estimate"})
		return err == nil && len(logs) >= 1
	}, 5*time.Second, 100*time.Millisecond)
}
