package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/slokas/internal/entities"
	"github.com/mrlokans/slokas/internal/tracker"
)

// SlokaReader is the read-only verse collection.
type SlokaReader interface {
	All() []entities.Sloka
	ByID(id string) (entities.Sloka, bool)
	Chapter(number int) []entities.Sloka
	Chapters() []entities.ChapterSummary
	ChapterInfo(number int) (entities.ChapterSummary, bool)
}

// EngagementTracker holds favourites, reads and the daily rotation.
type EngagementTracker interface {
	DailySloka(ctx context.Context) (entities.Sloka, error)
	RandomSloka(excludingID string, all []entities.Sloka) (entities.Sloka, error)
	ToggleFavorite(ctx context.Context, sloka entities.Sloka) []entities.Sloka
	RemoveFavorite(ctx context.Context, id string) []entities.Sloka
	IsFavorite(id string) bool
	Favorites() []entities.Sloka
	MarkRead(ctx context.Context, id string) int
	ReadCount() int
	Snapshot() tracker.Snapshot
}

// SlokaView is a sloka annotated with the user's favourite flag.
type SlokaView struct {
	entities.Sloka
	IsFavorite bool `json:"is_favorite"`
}

type ChapterResponse struct {
	Chapter     int         `json:"chapter"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Slokas      []SlokaView `json:"slokas"`
}

type SlokasController struct {
	slokas  SlokaReader
	tracker EngagementTracker
}

func NewSlokasController(slokas SlokaReader, tracker EngagementTracker) *SlokasController {
	return &SlokasController{slokas: slokas, tracker: tracker}
}

func (sc *SlokasController) view(s entities.Sloka) SlokaView {
	return SlokaView{Sloka: s, IsFavorite: sc.tracker.IsFavorite(s.ID)}
}

// ListChapters returns the chapter summaries.
// GET /api/chapters
func (sc *SlokasController) ListChapters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chapters": sc.slokas.Chapters()})
}

// GetChapter returns the slokas of one chapter. Unknown chapters are empty.
// GET /api/chapters/:number
func (sc *SlokasController) GetChapter(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}

	slokas := sc.slokas.Chapter(number)
	views := make([]SlokaView, 0, len(slokas))
	for _, s := range slokas {
		views = append(views, sc.view(s))
	}
	info, _ := sc.slokas.ChapterInfo(number)
	c.JSON(http.StatusOK, ChapterResponse{
		Chapter:     number,
		Name:        info.Name,
		Description: info.Description,
		Slokas:      views,
	})
}

// GetSloka returns a single sloka.
// GET /api/slokas/:id
func (sc *SlokasController) GetSloka(c *gin.Context) {
	s, ok := sc.slokas.ByID(c.Param("id"))
	if !ok {
		respondNotFound(c, "sloka")
		return
	}
	c.JSON(http.StatusOK, sc.view(s))
}

// Daily returns today's sloka.
// GET /api/slokas/daily
func (sc *SlokasController) Daily(c *gin.Context) {
	s, err := sc.tracker.DailySloka(c.Request.Context())
	if errors.Is(err, tracker.ErrNoSlokas) {
		respondError(c, http.StatusServiceUnavailable, "no slokas available")
		return
	}
	if err != nil {
		respondInternalError(c, err, "daily sloka")
		return
	}
	c.JSON(http.StatusOK, sc.view(s))
}

// Random returns a random sloka other than ?exclude.
// GET /api/slokas/random
func (sc *SlokasController) Random(c *gin.Context) {
	s, err := sc.tracker.RandomSloka(c.Query("exclude"), sc.slokas.All())
	if errors.Is(err, tracker.ErrNoSlokas) {
		respondError(c, http.StatusServiceUnavailable, "no slokas available")
		return
	}
	if err != nil {
		respondInternalError(c, err, "random sloka")
		return
	}
	c.JSON(http.StatusOK, sc.view(s))
}

// MarkRead records that the sloka was read.
// POST /api/slokas/:id/read
func (sc *SlokasController) MarkRead(c *gin.Context) {
	s, ok := sc.slokas.ByID(c.Param("id"))
	if !ok {
		respondNotFound(c, "sloka")
		return
	}

	count := sc.tracker.MarkRead(c.Request.Context(), s.ID)
	c.JSON(http.StatusOK, gin.H{"id": s.ID, "read_count": count})
}
