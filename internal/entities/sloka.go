package entities

// Sloka is a single numbered verse. The same record is used for the bundled
// dataset and for favourite snapshots.
type Sloka struct {
	ID            string `json:"id"`
	Chapter       int    `json:"chapter"`
	Verse         int    `json:"verse"`
	Sanskrit      string `json:"sanskrit"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
}

// Chapter mirrors the on-disk chapter file:
// {"chapter": n, "name": "...", "description": "...", "slokas": [...]}.
type Chapter struct {
	Chapter     int     `json:"chapter"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Slokas      []Sloka `json:"slokas"`
}

type ChapterSummary struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description"`
	VerseCount  int    `json:"verse_count"`
}

// DailyState is the persisted "today's sloka" pair. Both fields are written
// together.
type DailyState struct {
	LastVisitDate string `json:"last_visit_date"` // YYYY-MM-DD, device-local
	SlokaID       string `json:"current_daily_verse_id"`
}
