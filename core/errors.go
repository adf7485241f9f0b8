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

import "errors"

// Domain validation errors
var (
	// ErrInvalidNoteRecord indicates a NoteRecord failed validation.
	ErrInvalidNoteRecord = errors.New("invalid note record")

	// ErrEmptyContent indicates the clean content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidCollection indicates an invalid Collection value.
	ErrInvalidCollection = errors.New("invalid collection")

	// ErrInvalidScope indicates an unrecognized search scope name.
	ErrInvalidScope = errors.New("invalid search scope")

	// ErrInvalidJournalDate indicates a journal date not in YYYY-MM-DD form.
	ErrInvalidJournalDate = errors.New("invalid journal date")
)
