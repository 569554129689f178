// Copyright 2025 Poiesic Systems
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


// Package ai provides abstractions for the AI services used in embedeval.
//
// The package defines the capability interfaces the evaluation pipeline
// depends on:
//
//   - Embedder: "text in, fixed-length vector out"
//   - QuestionGenerator: synthetic question generation for dataset building
//   - Provider: an explicitly owned embedding resource with scoped release
//
// # Implementation Packages
//
//   - ai/openai: hosted OpenAI-compatible embedding API and question
//     generation via langchaingo
//   - ai/hugot: locally loaded ONNX sentence-embedding models (pretrained
//     or fine-tuned model directories)
//   - ai/mock: deterministic test doubles
//
// Public constructors (openai.NewProvider, hugot.NewProvider) return the
// Provider interface to enforce abstraction; the hit-rate evaluator treats
// hosted and local models polymorphically through the Embedder capability
// and never inspects the concrete type. Mock constructors return concrete
// types so tests can inject behavior and make call-count assertions.
//
// Providers are passed into evaluators by the caller and released with
// Close when the run is over; there is no package-level model state.
package ai
