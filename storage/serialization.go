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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/Ramsai26/new-project-personal-brain/core"
)

// MarshalEntry serializes an IndexedEntry to bytes.
func MarshalEntry(entry *core.IndexedEntry) ([]byte, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalEntry deserializes an IndexedEntry from bytes.
func UnmarshalEntry(data []byte) (*core.IndexedEntry, error) {
	var entry core.IndexedEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &entry, nil
}

// MarshalEntryID serializes an entry id for index key values.
func MarshalEntryID(id string) []byte {
	return []byte(id)
}

// UnmarshalEntryID deserializes an entry id from index key values.
func UnmarshalEntryID(data []byte) string {
	return string(data)
}
