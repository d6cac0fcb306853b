package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger is the minimal contract I need from a store to check readiness.
// Kept local to the handler package to avoid coupling and simplify tests.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Info is the static service identity reported by / and /health.
type Info struct {
	Name        string
	Version     string
	Environment string
}

// HealthHandler exposes service info, liveness and readiness endpoints.
type HealthHandler struct {
	repo Pinger
	info Info
}

func NewHealthHandler(repo Pinger, info Info) *HealthHandler {
	return &HealthHandler{repo: repo, info: info}
}

// Root reports the service name and version.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"name": h.info.Name, "version": h.info.Version})
}

// Health is the static status document; it doesn't check dependencies.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"version":     h.info.Version,
		"environment": h.info.Environment,
	})
}

// Liveness responds OK if the process is up.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness verifies the store answers a ping.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
