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


// Package synth generates question/document evaluation datasets from
// source text.
//
// Source documents are chunked, each chunk becomes a corpus entry, and
// an LLM generates questions per chunk. The chunk a question was
// generated from is, by construction, its single relevant document.
// Identifiers are content hashes, so regenerating from the same text
// yields the same IDs.
package synth
