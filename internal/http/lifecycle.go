package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/slokas/internal/lifecycle"
)

type LifecycleRequest struct {
	State string `json:"state" binding:"required"`
}

type LifecycleController struct {
	signal *lifecycle.Signal
	now    func() time.Time
}

func NewLifecycleController(signal *lifecycle.Signal) *LifecycleController {
	return &LifecycleController{signal: signal, now: time.Now}
}

// Publish forwards a client foreground/background transition.
// POST /api/lifecycle
func (lc *LifecycleController) Publish(c *gin.Context) {
	var req LifecycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "state is required")
		return
	}

	state, err := lifecycle.ParseState(req.State)
	if err != nil {
		respondBadRequest(c, "state must be \"active\" or \"background\"")
		return
	}

	lc.signal.Publish(lifecycle.Event{State: state, At: lc.now()})
	respondAccepted(c, "lifecycle event accepted", gin.H{"state": state.String()})
}
