// Package slokas provides the read-only verse repository.
//
// # Usage
//
//	repo, err := slokas.Bundled()
//	chapter := repo.Chapter(2)
//	all := repo.All()
//
// A Repository is immutable after construction and safe for concurrent
// reads. Every accessor returns a copy.
package slokas

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mrlokans/slokas/internal/entities"
)

// ErrInvalidData is wrapped by every validation failure in New and Load.
var ErrInvalidData = errors.New("invalid sloka data")

// Repository holds the verse set indexed by chapter and id.
type Repository struct {
	chapters map[int][]entities.Sloka
	info     map[int]entities.ChapterSummary
	order    []int // chapter numbers, ascending
	all      []entities.Sloka
	byID     map[string]int // index into all
}

// New validates the chapters and builds a repository from them.
// Slokas are ordered by verse within a chapter; chapters by number.
func New(chapters []entities.Chapter) (*Repository, error) {
	r := &Repository{
		chapters: make(map[int][]entities.Sloka, len(chapters)),
		info:     make(map[int]entities.ChapterSummary, len(chapters)),
		byID:     make(map[string]int),
	}

	for _, ch := range chapters {
		if ch.Chapter < 1 {
			return nil, fmt.Errorf("%w: chapter number %d", ErrInvalidData, ch.Chapter)
		}
		if _, exists := r.chapters[ch.Chapter]; exists {
			return nil, fmt.Errorf("%w: duplicate chapter %d", ErrInvalidData, ch.Chapter)
		}

		verses := make([]entities.Sloka, len(ch.Slokas))
		copy(verses, ch.Slokas)
		seen := make(map[int]bool, len(verses))
		for _, s := range verses {
			if s.ID == "" {
				return nil, fmt.Errorf("%w: chapter %d verse %d has no id", ErrInvalidData, ch.Chapter, s.Verse)
			}
			if s.Chapter != ch.Chapter {
				return nil, fmt.Errorf("%w: sloka %s belongs to chapter %d, found in chapter %d", ErrInvalidData, s.ID, s.Chapter, ch.Chapter)
			}
			if s.Verse < 1 {
				return nil, fmt.Errorf("%w: sloka %s has verse number %d", ErrInvalidData, s.ID, s.Verse)
			}
			if seen[s.Verse] {
				return nil, fmt.Errorf("%w: chapter %d has verse %d twice", ErrInvalidData, ch.Chapter, s.Verse)
			}
			seen[s.Verse] = true
		}
		sort.SliceStable(verses, func(i, j int) bool { return verses[i].Verse < verses[j].Verse })

		r.chapters[ch.Chapter] = verses
		r.info[ch.Chapter] = entities.ChapterSummary{
			Number:      ch.Chapter,
			Name:        ch.Name,
			Description: ch.Description,
			VerseCount:  len(verses),
		}
		r.order = append(r.order, ch.Chapter)
	}
	sort.Ints(r.order)

	for _, n := range r.order {
		for _, s := range r.chapters[n] {
			if _, dup := r.byID[s.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate sloka id %s", ErrInvalidData, s.ID)
			}
			r.byID[s.ID] = len(r.all)
			r.all = append(r.all, s)
		}
	}

	return r, nil
}

// Chapter returns the slokas of a chapter in verse order, or an empty slice
// for an unknown chapter number.
func (r *Repository) Chapter(number int) []entities.Sloka {
	verses := r.chapters[number]
	out := make([]entities.Sloka, len(verses))
	copy(out, verses)
	return out
}

// All returns every sloka, chapters in order and verses in order within
// each chapter.
func (r *Repository) All() []entities.Sloka {
	out := make([]entities.Sloka, len(r.all))
	copy(out, r.all)
	return out
}

// ByID looks up a sloka by its stable id.
func (r *Repository) ByID(id string) (entities.Sloka, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return entities.Sloka{}, false
	}
	return r.all[idx], true
}

// Chapters lists the known chapters with their names and verse counts.
func (r *Repository) Chapters() []entities.ChapterSummary {
	out := make([]entities.ChapterSummary, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.info[n])
	}
	return out
}

// ChapterInfo returns the summary of one chapter.
func (r *Repository) ChapterInfo(number int) (entities.ChapterSummary, bool) {
	info, ok := r.info[number]
	return info, ok
}

func (r *Repository) Len() int {
	return len(r.all)
}
