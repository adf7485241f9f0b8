package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ramsai26/new-project-personal-brain/core"
)

// Snapshot is one full capture of a note graph: every parsed page and
// journal entry at a point in time.
type Snapshot struct {
	Pages    []*core.NoteRecord `json:"pages"`
	Journals []*core.NoteRecord `json:"journals"`
}

// NoteSource produces snapshots of parsed notes for ingestion runs.
type NoteSource interface {
	// Snapshot returns all pages and journals currently in the source.
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// ExportSource reads snapshots from a JSON export file produced by the
// note parser.
type ExportSource struct {
	path string
}

var _ NoteSource = (*ExportSource)(nil)

// NewExportSource creates a source reading from the given export file.
func NewExportSource(path string) *ExportSource {
	return &ExportSource{path: path}
}

// Snapshot reads and decodes the export file. The collection kind is
// set from the array each record arrives in; journals missing an
// explicit date get one derived from their file name.
func (s *ExportSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotFailed, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotFailed, err)
	}

	for _, page := range snapshot.Pages {
		page.Kind = core.CollectionNotes
	}
	for _, journal := range snapshot.Journals {
		journal.Kind = core.CollectionJournals
		if journal.JournalDate == "" {
			journal.JournalDate = journalDateFromPath(journal.Path)
		}
	}

	return &snapshot, nil
}

// journalDateFromPath derives an ISO date from a journal file name like
// journals/2025_03_15.md. Returns "" when the name doesn't parse.
func journalDateFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	date := strings.ReplaceAll(base, "_", "-")
	if core.ValidateJournalDate(date) != nil {
		return ""
	}
	return date
}
