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


// Package ingestion orchestrates full passes over a note source.
//
// A run pulls one snapshot of all parsed pages and journals from the
// source, optionally enhances page content through the note model, and
// indexes everything through the vector index. Notes are processed
// concurrently on a worker pool; a failure on one note is counted and
// logged but never aborts the run. Each run produces a RunStats
// snapshot, persisted both on success and on failure.
//
// Journal entries are indexed verbatim: they are a factual record and
// are never sent through enhancement. Pages are enhanced only when
// their content is below the enhancement threshold, which keeps long
// documents out of the note model's context window.
package ingestion
