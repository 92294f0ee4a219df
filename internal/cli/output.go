package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mrlokans/slokas/internal/entities"
)

type stats struct {
	Username        string `json:"username"`
	ReadCount       int    `json:"read_count"`
	FavouritesCount int    `json:"favourites_count"`
	VisitedCount    int    `json:"visited_count"`
	TotalSlokas     int    `json:"total_slokas"`
	DailySloka      string `json:"daily_sloka,omitempty"`
	DailyDate       string `json:"daily_date,omitempty"`
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSloka(w io.Writer, opts *options, s entities.Sloka) error {
	if opts.jsonOut {
		return printJSON(w, s)
	}
	fmt.Fprintf(w, "Chapter %d, Verse %d (%s)\n", s.Chapter, s.Verse, s.ID)
	if s.Sanskrit != "" {
		fmt.Fprintln(w, s.Sanskrit)
	}
	if s.Pronunciation != "" {
		fmt.Fprintln(w, s.Pronunciation)
	}
	if s.Meaning != "" {
		fmt.Fprintln(w, s.Meaning)
	}
	return nil
}

func printChapters(w io.Writer, opts *options, chapters []entities.ChapterSummary) error {
	if opts.jsonOut {
		return printJSON(w, chapters)
	}
	for _, ch := range chapters {
		fmt.Fprintf(w, "%s (%d slokas)\n", chapterTitle(ch), ch.VerseCount)
		if ch.Description != "" {
			fmt.Fprintf(w, "    %s\n", ch.Description)
		}
	}
	return nil
}

// chapterTitle renders "Chapter 2 - Sankhya Yoga", or just the number when
// the chapter has no name.
func chapterTitle(ch entities.ChapterSummary) string {
	if ch.Name == "" {
		return fmt.Sprintf("Chapter %d", ch.Number)
	}
	return fmt.Sprintf("Chapter %d - %s", ch.Number, ch.Name)
}

func printFavourites(w io.Writer, opts *options, favourites []entities.Sloka) error {
	if opts.jsonOut {
		return printJSON(w, favourites)
	}
	if len(favourites) == 0 {
		fmt.Fprintln(w, "No favourites yet")
		return nil
	}
	for _, s := range favourites {
		fmt.Fprintf(w, "%-7s %s\n", s.ID, s.Meaning)
	}
	return nil
}

func printStats(w io.Writer, opts *options, st stats) error {
	if opts.jsonOut {
		return printJSON(w, st)
	}
	fmt.Fprintf(w, "Name:        %s\n", st.Username)
	fmt.Fprintf(w, "Read:        %d\n", st.ReadCount)
	fmt.Fprintf(w, "Favourites:  %d\n", st.FavouritesCount)
	fmt.Fprintf(w, "Visited:     %d of %d\n", st.VisitedCount, st.TotalSlokas)
	if st.DailySloka != "" {
		fmt.Fprintf(w, "Daily:       %s (%s)\n", st.DailySloka, st.DailyDate)
	}
	return nil
}
