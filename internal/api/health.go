package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Check reports the health of one dependency.
type Check func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Check
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Health handles GET /health. Any failing check makes the response 503.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	services := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		if err := check(c.Request.Context()); err != nil {
			services[name] = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		services[name] = "healthy"
	}

	resp := HealthResponse{Status: "healthy", Services: services}
	if status != http.StatusOK {
		resp.Status = "unhealthy"
	}
	c.JSON(status, resp)
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
