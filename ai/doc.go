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


// Package ai provides abstractions for the AI services the brain depends on.
//
// Two services are defined:
//
//   - Embedder: generates vector embeddings from note text
//   - Generator: produces text from prompts (answer synthesis, note
//     enhancement, model catalog listing)
//
// Provider aggregates both for convenient initialization and lifecycle
// management. Business logic depends only on these interfaces; the
// implementations live in sub-packages:
//
//   - ai/ollama: production implementation against a local Ollama server
//     (raw API for generation, OpenAI-compatible endpoint for embeddings)
//   - ai/mock: deterministic test doubles
//
// Public production constructors return interface types to prevent coupling
// to implementation details; mock constructors return concrete types so
// tests can inject behavior and assert on call counts.
package ai
