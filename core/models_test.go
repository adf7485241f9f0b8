package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryIDFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"forward slashes", "pages/second-brain.md", "pages_second-brain.md"},
		{"backslashes", `pages\second-brain.md`, "pages_second-brain.md"},
		{"mixed separators", `vault/pages\note.md`, "vault_pages_note.md"},
		{"no separators", "note.md", "note.md"},
		{"empty path", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EntryIDFromPath(tt.path))
		})
	}
}

func TestChecksum(t *testing.T) {
	a := Checksum("some note content")
	b := Checksum("some note content")
	c := Checksum("different content")

	assert.Equal(t, a, b, "identical content must produce identical checksums")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32, "BLAKE2b-128 hex digest is 32 characters")
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		input string
		want  Scope
	}{
		{"all", ScopeAll},
		{"", ScopeAll},
		{"notes", ScopeNotes},
		{"journals", ScopeJournals},
		{"  Journals ", ScopeJournals},
	}

	for _, tt := range tests {
		scope, err := ParseScope(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, scope)
	}

	_, err := ParseScope("everything")
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestScopeCollections(t *testing.T) {
	assert.Equal(t, []Collection{CollectionNotes, CollectionJournals}, ScopeAll.Collections())
	assert.Equal(t, []Collection{CollectionNotes}, ScopeNotes.Collections())
	assert.Equal(t, []Collection{CollectionJournals}, ScopeJournals.Collections())
}

func TestCollectionString(t *testing.T) {
	assert.Equal(t, "notes", CollectionNotes.String())
	assert.Equal(t, "journals", CollectionJournals.String())
}

func TestNoteRecordIndexable(t *testing.T) {
	note := &NoteRecord{Title: "T", Path: "pages/t.md", CleanContent: "text", Kind: CollectionNotes}
	assert.True(t, note.Indexable())

	empty := &NoteRecord{Title: "Empty", Path: "pages/empty.md", Kind: CollectionNotes}
	assert.False(t, empty.Indexable())

	var nilNote *NoteRecord
	assert.False(t, nilNote.Indexable())
}

func TestSearchResultIsSummary(t *testing.T) {
	summary := &SearchResult{ID: SummaryResultID, Content: "synthesized"}
	assert.True(t, summary.IsSummary())
	assert.Nil(t, summary.Distance)

	d := 0.25
	hit := &SearchResult{ID: "pages_t.md", Distance: &d}
	assert.False(t, hit.IsSummary())
}
