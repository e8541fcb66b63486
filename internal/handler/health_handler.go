package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carbonfront/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	client port.ProcessingClient
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(client port.ProcessingClient) *HealthHandler {
	return &HealthHandler{client: client}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Description Reports whether the processing service answers HTTP
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.client.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "processing service not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
