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


// Package ir delegates multi-metric information-retrieval evaluation to
// a companion service.
//
// The workbench computes hit rate itself; richer ranking metrics
// (accuracy at k, MRR, NDCG and friends) come from an external
// evaluator that owns its own metric definitions. This package only
// ships a dataset and a model reference across the boundary and records
// whatever metric table comes back. Metric names and values are opaque
// here.
package ir
