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


// Package eval implements hit-rate evaluation of embedding providers.
//
// The Evaluator builds an ephemeral vector index over a dataset's corpus
// with a given provider, retrieves the top-k nearest documents per query,
// and records a binary hit/miss outcome against the single ground-truth
// document. Aggregation reduces labeled result sequences to scalar hit
// rates for side-by-side comparison, and reports are written as CSV
// tables keyed by run name.
//
// Only the hit/miss outcome is load-bearing: nearest-neighbor ranking and
// tie-breaking belong to the underlying index and are not reproduced
// bit-exactly.
package eval
