package slokas

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/mrlokans/slokas/internal/entities"
)

//go:embed data/*.json
var bundled embed.FS

// ChapterFilePattern matches chapter files in a data directory.
const ChapterFilePattern = "chapter*.json"

// Bundled loads the dataset embedded in the binary. The embedded set is a
// small sample; point SLOKA_DATA_DIR at a directory of chapter files to
// serve the full eighteen chapters.
func Bundled() (*Repository, error) {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open bundled data: %w", err)
	}
	return Load(sub)
}

// LoadDir loads chapter files from a directory on disk.
func LoadDir(dir string) (*Repository, error) {
	return Load(os.DirFS(dir))
}

// Open returns the repository for a configured data directory, or the
// bundled set when dir is empty.
func Open(dir string) (*Repository, error) {
	if dir == "" {
		return Bundled()
	}
	return LoadDir(dir)
}

// Load reads every chapter*.json file at the root of fsys.
func Load(fsys fs.FS) (*Repository, error) {
	names, err := fs.Glob(fsys, ChapterFilePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapter files: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no %s files found", ErrInvalidData, ChapterFilePattern)
	}

	chapters := make([]entities.Chapter, 0, len(names))
	for _, name := range names {
		ch, err := readChapter(fsys, name)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}

	return New(chapters)
}

func readChapter(fsys fs.FS, name string) (entities.Chapter, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return entities.Chapter{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var ch entities.Chapter
	if err := json.Unmarshal(raw, &ch); err != nil {
		return entities.Chapter{}, fmt.Errorf("%w: %s: %v", ErrInvalidData, path.Base(name), err)
	}
	return ch, nil
}
