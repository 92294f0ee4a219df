package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/slokas/internal/entities"
	"github.com/mrlokans/slokas/internal/settingsstore"
)

// ProfileStore resolves and updates the display name.
type ProfileStore interface {
	UsernameInfo(ctx context.Context) settingsstore.UsernameInfo
	SetUsername(ctx context.Context, name string) error
	ClearUsername(ctx context.Context) error
}

type StatsResponse struct {
	Username        string               `json:"username"`
	ReadCount       int                  `json:"read_count"`
	FavouritesCount int                  `json:"favourites_count"`
	VisitedCount    int                  `json:"visited_count"`
	TotalSlokas     int                  `json:"total_slokas"`
	Daily           *entities.DailyState `json:"daily,omitempty"`
}

type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

type ProfileController struct {
	slokas  SlokaReader
	tracker EngagementTracker
	profile ProfileStore
}

func NewProfileController(slokas SlokaReader, tracker EngagementTracker, profile ProfileStore) *ProfileController {
	return &ProfileController{slokas: slokas, tracker: tracker, profile: profile}
}

// Stats returns the engagement counters shown on the profile.
// GET /api/stats
func (pc *ProfileController) Stats(c *gin.Context) {
	snap := pc.tracker.Snapshot()
	c.JSON(http.StatusOK, StatsResponse{
		Username:        pc.profile.UsernameInfo(c.Request.Context()).Username,
		ReadCount:       snap.ReadCount,
		FavouritesCount: len(snap.Favorites),
		VisitedCount:    snap.VisitedCount,
		TotalSlokas:     len(pc.slokas.All()),
		Daily:           snap.Daily,
	})
}

// GetProfile returns the display name and where it came from.
// GET /api/profile
func (pc *ProfileController) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, pc.profile.UsernameInfo(c.Request.Context()))
}

// UpdateUsername stores a new display name.
// PUT /api/profile/username
func (pc *ProfileController) UpdateUsername(c *gin.Context) {
	var req UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "username is required")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		respondBadRequest(c, "username is required")
		return
	}

	if err := pc.profile.SetUsername(c.Request.Context(), req.Username); err != nil {
		respondInternalError(c, err, "update username")
		return
	}
	c.JSON(http.StatusOK, pc.profile.UsernameInfo(c.Request.Context()))
}

// ClearUsername removes the stored name.
// DELETE /api/profile/username
func (pc *ProfileController) ClearUsername(c *gin.Context) {
	if err := pc.profile.ClearUsername(c.Request.Context()); err != nil {
		respondInternalError(c, err, "clear username")
		return
	}
	c.JSON(http.StatusOK, pc.profile.UsernameInfo(c.Request.Context()))
}
