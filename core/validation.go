// Copyright 2025 Personal Brain Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"time"
)

// journalDateLayout is the wire format for journal dates.
const journalDateLayout = "2006-01-02"

// ValidateNoteRecord validates a NoteRecord according to domain rules.
//
// Validation rules:
//   - Kind must be a known collection
//   - journal entries with a JournalDate must use YYYY-MM-DD
//
// NOT validated:
//   - CleanContent (empty content is a skip at index time, not a
//     validation failure; see NoteRecord.Indexable)
//   - Path (empty paths fall back to positional ids)
func ValidateNoteRecord(record *NoteRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidNoteRecord)
	}

	if err := ValidateCollection(record.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNoteRecord, err)
	}

	if record.Kind == CollectionJournals && record.JournalDate != "" {
		if err := ValidateJournalDate(record.JournalDate); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidNoteRecord, err)
		}
	}

	return nil
}

// ValidateCollection validates that a Collection has a valid value.
func ValidateCollection(c Collection) error {
	if c != CollectionNotes && c != CollectionJournals {
		return fmt.Errorf("%w: value %d", ErrInvalidCollection, c)
	}
	return nil
}

// ValidateJournalDate checks that a date string is in YYYY-MM-DD form.
func ValidateJournalDate(date string) error {
	if _, err := time.Parse(journalDateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidJournalDate, date)
	}
	return nil
}
