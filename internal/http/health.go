package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one backing dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type dependencyStatus struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type Health struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealth(checks ...HealthCheck) *Health {
	return &Health{checks: checks, timeout: 2 * time.Second}
}

func (h *Health) Register(router *gin.Engine) {
	router.GET("/healthz", h.liveness)
	router.GET("/readyz", h.readiness)
}

func (h *Health) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Health) readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	deps := make([]dependencyStatus, 0, len(h.checks))
	for _, check := range h.checks {
		dep := dependencyStatus{Name: check.Name, Status: "ok"}
		if err := check.Check(ctx); err != nil {
			dep.Status = "unavailable"
			dep.Message = err.Error()
			status = http.StatusServiceUnavailable
		}
		deps = append(deps, dep)
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	c.JSON(status, gin.H{"status": overall, "deps": deps})
}
