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


// Package search provides the retrieval engine over the vector index.
//
// A retrieval runs the index query first, then synthesizes a summary of
// the hits through the generation model and prepends it to the result
// list as a sentinel result with id "summary" and no distance.
// Synthesis is best-effort: if the model is unreachable the raw index
// results are returned unchanged.
package search
