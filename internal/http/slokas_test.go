package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/slokas/internal/entities"
	"github.com/mrlokans/slokas/internal/kvstore"
	"github.com/mrlokans/slokas/internal/slokas"
	"github.com/mrlokans/slokas/internal/tracker"
)

func TestSlokasController_Chapters(t *testing.T) {
	app := setupTestApp(t)

	t.Run("lists summaries", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/chapters", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[struct {
			Chapters []entities.ChapterSummary `json:"chapters"`
		}](t, w)
		assert.Equal(t, []entities.ChapterSummary{
			{Number: 1, Name: "Arjuna Vishada Yoga", Description: "Arjuna's despair", VerseCount: 2},
			{Number: 2, VerseCount: 1},
		}, resp.Chapters)
	})

	t.Run("returns slokas of a chapter", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/chapters/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[ChapterResponse](t, w)
		assert.Equal(t, 1, resp.Chapter)
		assert.Equal(t, "Arjuna Vishada Yoga", resp.Name)
		assert.Equal(t, "Arjuna's despair", resp.Description)
		require.Len(t, resp.Slokas, 2)
		assert.Equal(t, "1.1", resp.Slokas[0].ID)
		assert.Equal(t, "1.2", resp.Slokas[1].ID)
	})

	t.Run("unknown chapter is empty", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/chapters/19", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[ChapterResponse](t, w)
		assert.Empty(t, resp.Slokas)
		assert.Contains(t, w.Body.String(), `"slokas":[]`)
	})

	t.Run("chapter zero is empty", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/chapters/0", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[ChapterResponse](t, w)
		assert.Equal(t, 0, resp.Chapter)
		assert.Empty(t, resp.Name)
		assert.Empty(t, resp.Slokas)
	})

	t.Run("non-numeric chapter is rejected", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/chapters/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid number")
	})
}

func TestSlokasController_GetSloka(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, http.MethodGet, "/api/slokas/2.47", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[SlokaView](t, w)
	assert.Equal(t, "2.47", view.ID)
	assert.Equal(t, 2, view.Chapter)
	assert.False(t, view.IsFavorite)

	w = app.do(t, http.MethodGet, "/api/slokas/9.99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "sloka not found")
}

func TestSlokasController_Daily(t *testing.T) {
	t.Run("stable within a day", func(t *testing.T) {
		app := setupTestApp(t)

		first := decode[SlokaView](t, app.do(t, http.MethodGet, "/api/slokas/daily", nil))
		second := decode[SlokaView](t, app.do(t, http.MethodGet, "/api/slokas/daily", nil))

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.ID, app.tracker.Snapshot().Daily.SlokaID)
	})

	t.Run("empty collection is unavailable", func(t *testing.T) {
		repo, err := slokas.New(nil)
		require.NoError(t, err)
		tr := tracker.New(kvstore.NewMemoryStore(), repo)
		tr.Initialize(context.Background())

		router := gin.New()
		router.GET("/daily", NewSlokasController(repo, tr).Daily)

		app := &testApp{router: router}
		w := app.do(t, http.MethodGet, "/daily", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestSlokasController_Random(t *testing.T) {
	app := setupTestApp(t)

	for i := 0; i < 20; i++ {
		w := app.do(t, http.MethodGet, "/api/slokas/random?exclude=1.1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEqual(t, "1.1", decode[SlokaView](t, w).ID)
	}
	assert.Zero(t, app.tracker.Snapshot().VisitedCount)
}

func TestSlokasController_MarkRead(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, http.MethodPost, "/api/slokas/1.1/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"1.1","read_count":1}`, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/slokas/1.1/read", nil)
	assert.JSONEq(t, `{"id":"1.1","read_count":1}`, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/slokas/2.47/read", nil)
	assert.JSONEq(t, `{"id":"2.47","read_count":2}`, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/slokas/nope/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 2, app.tracker.ReadCount())
}
