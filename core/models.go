package core

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Collection names a physical partition of the vector index.
// Pages and journal entries are stored separately: date search only ever
// touches journals, and the two kinds follow different enhancement policy
// at ingestion time.
type Collection int

const (
	// CollectionNotes holds regular pages.
	CollectionNotes Collection = iota + 1
	// CollectionJournals holds dated journal entries.
	CollectionJournals
)

// String returns the store-level collection name.
func (c Collection) String() string {
	switch c {
	case CollectionNotes:
		return "notes"
	case CollectionJournals:
		return "journals"
	default:
		return "unknown"
	}
}

// Scope selects which collections a query runs against.
type Scope int

const (
	// ScopeAll queries both collections.
	ScopeAll Scope = iota + 1
	// ScopeNotes queries only regular pages.
	ScopeNotes
	// ScopeJournals queries only journal entries.
	ScopeJournals
)

// ParseScope maps the wire-level scope name to a Scope.
// Accepts "all", "notes" and "journals"; an empty string means all.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "notes":
		return ScopeNotes, nil
	case "journals":
		return ScopeJournals, nil
	default:
		return 0, ErrInvalidScope
	}
}

// Collections returns the collections covered by the scope.
func (s Scope) Collections() []Collection {
	switch s {
	case ScopeNotes:
		return []Collection{CollectionNotes}
	case ScopeJournals:
		return []Collection{CollectionJournals}
	default:
		return []Collection{CollectionNotes, CollectionJournals}
	}
}

// NoteRecord is the normalized representation of one parsed note, produced
// by the external parser and passed by value into the ingestion pipeline.
type NoteRecord struct {
	Title        string     `json:"title"`
	Path         string     `json:"path"`
	Content      string     `json:"content"`
	CleanContent string     `json:"clean_content"`
	Kind         Collection `json:"-"`
	JournalDate  string     `json:"journal_date,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Links        []string   `json:"links,omitempty"`
	BlockRefs    []string   `json:"block_refs,omitempty"`
	LastModified time.Time  `json:"last_modified"`
}

// Indexable reports whether the record carries content worth storing.
// Records with empty clean content are skipped, never stored.
func (n *NoteRecord) Indexable() bool {
	return n != nil && n.CleanContent != ""
}

// EntryIDFromPath derives a stable entry id from a note path by replacing
// path separators with underscores. Returns "" for an empty path; the
// repository then assigns a positional fallback id.
func EntryIDFromPath(path string) string {
	if path == "" {
		return ""
	}
	r := strings.NewReplacer("\\", "_", "/", "_")
	return r.Replace(path)
}

// Checksum returns a hex-encoded BLAKE2b-128 digest of text. Used to detect
// unchanged content so an existing embedding can be reused on re-index.
func Checksum(text string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// EntryMetadata is the filterable metadata stored alongside each entry.
// Tags are comma-joined so containment filters can run on a single field.
type EntryMetadata struct {
	Title        string `json:"title"`
	Path         string `json:"path"`
	Journal      bool   `json:"is_journal"`
	Tags         string `json:"tags,omitempty"`
	JournalDate  string `json:"journal_date,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	Checksum     string `json:"checksum,omitempty"`
	Summary      bool   `json:"is_summary,omitempty"`
}

// IndexedEntry is what the vector index stores: one embedded note keyed by
// a path-derived id, unique per collection.
type IndexedEntry struct {
	ID         string        `json:"id"`
	Content    string        `json:"content"`
	Vector     []float32     `json:"vector,omitempty"`
	Metadata   EntryMetadata `json:"metadata"`
	InsertedAt time.Time     `json:"inserted_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// SummaryResultID is the sentinel id of a synthesized summary result.
// When present, the summary is always the first element of a result set
// and carries no distance.
const SummaryResultID = "summary"

// SearchResult is one ranked hit from the vector index, or a synthesized
// summary prepended by the retrieval engine.
type SearchResult struct {
	ID       string        `json:"id"`
	Content  string        `json:"content"`
	Metadata EntryMetadata `json:"metadata"`
	// Distance is the similarity metric from the embedding index; lower
	// means more relevant. Nil for results that were not ranked by
	// embedding similarity (summaries, metadata filters).
	Distance *float64 `json:"distance,omitempty"`
}

// IsSummary reports whether the result is a synthesized summary.
func (r *SearchResult) IsSummary() bool {
	return r.ID == SummaryResultID
}

// RunStatus tracks the lifecycle of one ingestion run.
type RunStatus string

const (
	StatusInProgress RunStatus = "in_progress"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// RunStats aggregates the outcome of one ingestion run. It is owned by the
// orchestrator for the lifetime of the run and persisted as an immutable
// snapshot keyed by the start timestamp.
type RunStats struct {
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time,omitzero"`
	DurationSeconds   float64   `json:"duration_seconds"`
	PagesProcessed    int       `json:"pages_processed"`
	JournalsProcessed int       `json:"journals_processed"`
	EnhancedCount     int       `json:"enhanced_count"`
	Errors            int       `json:"errors"`
	Status            RunStatus `json:"status"`
	Error             string    `json:"error,omitempty"`
}
