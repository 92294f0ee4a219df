package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/slokas/internal/kvstore"
	"github.com/mrlokans/slokas/internal/scheduler"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	store    kvstore.Backend
	rotation *scheduler.DailyRotationScheduler
	version  string
}

func NewHealthController(store kvstore.Backend, rotation *scheduler.DailyRotationScheduler, version string) *HealthController {
	return &HealthController{
		store:    store,
		rotation: rotation,
		version:  version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			checks["store"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["store"] = "ok"
		}
	} else {
		checks["store"] = "not configured"
	}

	// Rotation state is informational and never marks the service unhealthy
	switch {
	case h.rotation == nil:
		checks["rotation"] = "not configured"
	case h.rotation.IsRunning():
		checks["rotation"] = "running"
	default:
		checks["rotation"] = "stopped"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

// Rotation reports the daily rotation job status.
// GET /api/rotation
func (h *HealthController) Rotation(c *gin.Context) {
	if h.rotation == nil {
		respondNotFound(c, "rotation scheduler")
		return
	}
	c.JSON(http.StatusOK, h.rotation.Status())
}
