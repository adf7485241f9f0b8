package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ramsai26/new-project-personal-brain/core"
)

// statsFileLayout names snapshot files by their run start timestamp.
const statsFileLayout = "20060102_150405"

// StatsWriter persists run statistics snapshots.
type StatsWriter interface {
	// Write persists one immutable stats snapshot.
	Write(stats *core.RunStats) error
}

// FileStatsWriter writes run statistics as JSON files into a directory,
// one file per run, named processing_stats_<timestamp>.json.
type FileStatsWriter struct {
	dir string
}

var _ StatsWriter = (*FileStatsWriter)(nil)

// NewFileStatsWriter creates a writer targeting dir, creating it if
// needed.
func NewFileStatsWriter(dir string) (*FileStatsWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStatsWriter{dir: dir}, nil
}

// Write persists the stats snapshot, keyed by the run start time.
func (w *FileStatsWriter) Write(stats *core.RunStats) error {
	name := fmt.Sprintf("processing_stats_%s.json", stats.StartTime.UTC().Format(statsFileLayout))
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.dir, name), data, 0644)
}

// discardStatsWriter drops snapshots; used when no writer is configured.
type discardStatsWriter struct{}

func (discardStatsWriter) Write(*core.RunStats) error { return nil }
