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


// Package index maps parsed notes onto the vector store.
//
// The index owns the write path: it derives stable entry ids from note
// paths, embeds clean content, and upserts entries into the right
// collection. Re-indexing an unchanged note reuses the stored embedding
// instead of calling the embedding model again; the content checksum in
// the entry metadata is the change detector.
//
// The read path embeds a query once and fans out over the collections
// selected by the scope, merging per-collection matches into one list
// ordered by distance.
package index
