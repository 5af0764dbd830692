package handlers

import (
	"context"
	"net/http"
	"time"

	"lolstats/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const healthTimeout = 2 * time.Second

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// HealthHandler reports the state of the dependencies.
type HealthHandler struct {
	checks map[string]HealthCheck
}

type HealthHandlerDependencies struct {
	Checks map[string]HealthCheck
}

// NewHealthHandler creates a new instance of the health handler.
func NewHealthHandler(deps *HealthHandlerDependencies) *HealthHandler {
	return &HealthHandler{checks: deps.Checks}
}

// GetHealth handles GET /health.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	result := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.Ctx(ctx, zerolog.Nop()).Warn().Err(err).Str("dependency", name).Msg("health check failed")
			result[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		result[name] = "up"
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": result})
}
