package tracker

import (
	"context"

	"github.com/mrlokans/slokas/internal/entities"
)

// ToggleFavorite removes sloka from the favourites when present and
// appends a snapshot of it otherwise. The stored list is overwritten and
// the new list is returned.
func (t *Tracker) ToggleFavorite(ctx context.Context, sloka entities.Sloka) []entities.Sloka {
	t.mu.Lock()
	defer t.mu.Unlock()

	if idx := t.favoriteIndexLocked(sloka.ID); idx >= 0 {
		t.favorites = append(t.favorites[:idx:idx], t.favorites[idx+1:]...)
	} else {
		t.favorites = append(t.favorites, sloka)
	}
	t.saveJSON(ctx, entities.SettingKeyFavorites, t.favorites)

	return t.favoritesLocked()
}

// RemoveFavorite drops the favourite with the given id. Unknown ids leave
// the list and the store untouched.
func (t *Tracker) RemoveFavorite(ctx context.Context, id string) []entities.Sloka {
	t.mu.Lock()
	defer t.mu.Unlock()

	if idx := t.favoriteIndexLocked(id); idx >= 0 {
		t.favorites = append(t.favorites[:idx:idx], t.favorites[idx+1:]...)
		t.saveJSON(ctx, entities.SettingKeyFavorites, t.favorites)
	}
	return t.favoritesLocked()
}

func (t *Tracker) IsFavorite(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.favoriteIndexLocked(id) >= 0
}

// Favorites returns the favourites in the order they were added.
func (t *Tracker) Favorites() []entities.Sloka {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.favoritesLocked()
}

// MarkRead records id as read and returns the read count. Ids already read
// do not change the count.
func (t *Tracker) MarkRead(ctx context.Context, id string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.readIDs.add(id) {
		t.saveJSON(ctx, entities.SettingKeyReadSlokas, t.readIDs.list())
	}
	return t.readIDs.len()
}

func (t *Tracker) ReadCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readIDs.len()
}

func (t *Tracker) favoriteIndexLocked(id string) int {
	for i, s := range t.favorites {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) favoritesLocked() []entities.Sloka {
	out := make([]entities.Sloka, len(t.favorites))
	copy(out, t.favorites)
	return out
}
