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


// Package ollama provides AI service implementations backed by a local
// Ollama server.
//
// Text generation uses Ollama's native API (/api/generate, /api/tags)
// because streaming and the model catalog are not exposed through the
// OpenAI compatibility layer. Embeddings go through the OpenAI-compatible
// /v1 endpoint via langchaingo, which also works against LocalAI and vLLM.
//
//	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := ollama.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "sample text")
//	res, err := provider.Generator().Generate(ctx, ai.GenerateRequest{Prompt: "What is a second brain?"})
package ollama
