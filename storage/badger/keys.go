package badger

import (
	"fmt"

	"github.com/Ramsai26/new-project-personal-brain/core"
)

// Key prefixes for different data types
const (
	entryRecordPrefix = "entrec"
	journalDatePrefix = "entdate"
	entrySeqPrefix    = "entseq"
)

// makeEntryKey generates a key for an entry by collection and id.
func makeEntryKey(col core.Collection, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", entryRecordPrefix, col, id))
}

// makeCollectionPrefix generates the key prefix covering all entries
// of a collection.
func makeCollectionPrefix(col core.Collection) []byte {
	return []byte(fmt.Sprintf("%s:%s:", entryRecordPrefix, col))
}

// makeJournalDateKey generates a composite key for the journal date index.
// Dates are ISO (YYYY-MM-DD), so lexicographic order is chronological.
// Format: prefix:date:id
func makeJournalDateKey(date, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", journalDatePrefix, date, id))
}

// makePartialJournalDateKey generates the prefix covering all index keys
// for one date.
func makePartialJournalDateKey(date string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", journalDatePrefix, date))
}

// makeEntrySeqName generates the sequence name for a collection's
// positional ids.
func makeEntrySeqName(col core.Collection) string {
	return fmt.Sprintf("%s:%s", entrySeqPrefix, col)
}
