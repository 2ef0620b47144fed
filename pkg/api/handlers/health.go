package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/meshgate/pkg/api/types"
	"github.com/urmzd/meshgate/pkg/device"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	link device.LinkMonitor
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(link device.LinkMonitor) *HealthHandler {
	return &HealthHandler{link: link}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Reports whether the gateway event stream is connected
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Gateway stream connected"
// @Failure      503  {object}  types.HealthResponse  "Gateway stream down"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	gateway := "disconnected"
	if h.link.IsConnected() {
		gateway = "connected"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if gateway != "connected" {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Gateway:   gateway,
		Timestamp: time.Now(),
	})
}
