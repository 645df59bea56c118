// Package history persists finished analysis runs to a JSON file.
package history

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Mazosolution/mazo-parser/internal/report"
)

// Entry is one stored analysis run.
type Entry struct {
	ID         string         `json:"id"`
	Date       time.Time      `json:"date"`
	JDCount    int            `json:"jd_count"`
	FileCount  int            `json:"file_count"`
	Candidates []report.Entry `json:"candidates"`
}

type History struct {
	Items []*Entry
}

func (h *History) Len() int {
	return len(h.Items)
}

func (h *History) Append(items ...*Entry) {
	h.Items = append(h.Items, items...)
}

func (h *History) FindByID(id string) *Entry {
	for _, entry := range h.Items {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}

// NewEntry snapshots one finished run with a fresh id and the current time.
func NewEntry(jdCount, fileCount int, candidates []report.Entry) *Entry {
	return &Entry{
		ID:         uuid.NewString(),
		Date:       time.Now().UTC(),
		JDCount:    jdCount,
		FileCount:  fileCount,
		Candidates: candidates,
	}
}

// FromFile loads stored history. A missing or empty file is an empty history,
// not an error, so a first run starts clean.
func FromFile(path string) (*History, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &History{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &History{}, nil
	}

	var history History
	if err := json.NewDecoder(file).Decode(&history); err != nil {
		return nil, err
	}
	return &history, nil
}

func (h *History) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(h); err != nil {
		return err
	}
	return nil
}
