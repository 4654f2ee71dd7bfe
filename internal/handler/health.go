package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingFunc reports record-store reachability for the readiness probe.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	ping PingFunc
}

func NewHealthHandler(ping PingFunc) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
