package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/slokas/internal/entities"
)

type toggleResponse struct {
	ID         string           `json:"id"`
	IsFavorite bool             `json:"is_favorite"`
	Favourites []entities.Sloka `json:"favourites"`
}

func TestFavouritesController_Toggle(t *testing.T) {
	app := setupTestApp(t)

	w := app.do(t, http.MethodPost, "/api/slokas/2.47/favourite/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[toggleResponse](t, w)
	assert.True(t, resp.IsFavorite)
	require.Len(t, resp.Favourites, 1)
	assert.Equal(t, "Your right is to action alone", resp.Favourites[0].Meaning)

	view := decode[SlokaView](t, app.do(t, http.MethodGet, "/api/slokas/2.47", nil))
	assert.True(t, view.IsFavorite)

	w = app.do(t, http.MethodPost, "/api/slokas/2.47/favourite/toggle", nil)
	resp = decode[toggleResponse](t, w)
	assert.False(t, resp.IsFavorite)
	assert.Empty(t, resp.Favourites)

	w = app.do(t, http.MethodPost, "/api/slokas/nope/favourite/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavouritesController_ListAndRemove(t *testing.T) {
	app := setupTestApp(t)
	app.do(t, http.MethodPost, "/api/slokas/1.2/favourite/toggle", nil)
	app.do(t, http.MethodPost, "/api/slokas/1.1/favourite/toggle", nil)

	w := app.do(t, http.MethodGet, "/api/favourites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[FavouritesResponse](t, w)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "1.2", list.Favourites[0].ID)
	assert.Equal(t, "1.1", list.Favourites[1].ID)

	w = app.do(t, http.MethodDelete, "/api/favourites/1.2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = decode[FavouritesResponse](t, w)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "1.1", list.Favourites[0].ID)

	w = app.do(t, http.MethodDelete, "/api/favourites/missing", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[FavouritesResponse](t, w).Total)
}

func TestFavouritesController_RemoveUnknownSnapshot(t *testing.T) {
	app := setupTestApp(t)
	app.tracker.ToggleFavorite(context.Background(), entities.Sloka{ID: "7.7", Chapter: 7, Verse: 7})

	w := app.do(t, http.MethodDelete, "/api/favourites/7.7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[FavouritesResponse](t, w).Total)
}
