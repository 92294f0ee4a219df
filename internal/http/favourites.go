package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/slokas/internal/entities"
)

type FavouritesResponse struct {
	Favourites []entities.Sloka `json:"favourites"`
	Total      int              `json:"total"`
}

type FavouritesController struct {
	slokas  SlokaReader
	tracker EngagementTracker
}

func NewFavouritesController(slokas SlokaReader, tracker EngagementTracker) *FavouritesController {
	return &FavouritesController{slokas: slokas, tracker: tracker}
}

// ToggleFavourite adds or removes a sloka from favourites.
// POST /api/slokas/:id/favourite/toggle
func (fc *FavouritesController) ToggleFavourite(c *gin.Context) {
	s, ok := fc.slokas.ByID(c.Param("id"))
	if !ok {
		respondNotFound(c, "sloka")
		return
	}

	favourites := fc.tracker.ToggleFavorite(c.Request.Context(), s)
	c.JSON(http.StatusOK, gin.H{
		"id":          s.ID,
		"is_favorite": fc.tracker.IsFavorite(s.ID),
		"favourites":  favourites,
	})
}

// RemoveFavourite removes a favourite by id. Works for ids that no longer
// exist in the collection.
// DELETE /api/favourites/:id
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	favourites := fc.tracker.RemoveFavorite(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, FavouritesResponse{Favourites: favourites, Total: len(favourites)})
}

// ListFavourites returns the favourites in the order they were added.
// GET /api/favourites
func (fc *FavouritesController) ListFavourites(c *gin.Context) {
	favourites := fc.tracker.Favorites()
	c.JSON(http.StatusOK, FavouritesResponse{Favourites: favourites, Total: len(favourites)})
}
