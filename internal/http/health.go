package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/packaging-service/internal/circuitbreaker"
)

const (
	readinessCheckTimeout = 2 * time.Second
	maxConcurrentChecks   = 4

	statusOK       = "ok"
	statusDegraded = "degraded"
)

// HealthChecker probes one dependency of the service.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// Check calls f(ctx).
func (f HealthCheckFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// ReadinessResponse reports the outcome of every readiness check.
//
// @Description Readiness probe result
type ReadinessResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks"`
} // @name ReadinessResponse

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
	timeout         time.Duration
}

// NewHealthHandler creates a health handler with no registered dependencies.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
		timeout:         readinessCheckTimeout,
	}
}

// RegisterChecker adds a dependency probed by the readiness endpoint. Nil checkers are ignored.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	if checker != nil {
		h.checkers[name] = checker
	}
}

// RegisterCircuitBreaker reports cb as name+"_circuit" on the readiness endpoint. Nil breakers are ignored.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb != nil {
		h.circuitBreakers[name] = cb
	}
}

// Register mounts /healthz and /readyz on router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK if the service is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Returns OK when every registered dependency answers and no circuit breaker is open. Estimates keep working from the default catalog while the catalog breaker is open, but the service reports degraded.
// @Tags        Health
// @Produce     json
// @Success     200 {object} ReadinessResponse "Service is ready"
// @Failure     503 {object} ReadinessResponse "Service is degraded"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	resp := h.check(c.Request.Context())

	status := http.StatusOK
	if resp.Status != statusOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// check probes every checker concurrently, each bounded by the handler timeout.
func (h *HealthHandler) check(ctx context.Context) ReadinessResponse {
	resp := ReadinessResponse{Status: statusOK, Checks: make(map[string]string)}

	var mu sync.Mutex
	record := func(name, result string, healthy bool) {
		mu.Lock()
		defer mu.Unlock()
		resp.Checks[name] = result
		if !healthy {
			resp.Status = statusDegraded
		}
	}

	var g errgroup.Group
	g.SetLimit(maxConcurrentChecks)
	for name, checker := range h.checkers {
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
			defer cancel()

			if err := checker.Check(checkCtx); err != nil {
				record(name, err.Error(), false)
			} else {
				record(name, statusOK, true)
			}
			return nil
		})
	}
	_ = g.Wait()

	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		record(name+"_circuit", stats.State, stats.IsHealthy)
	}

	if len(resp.Checks) == 0 {
		resp.Checks["service"] = statusOK
	}
	return resp
}
