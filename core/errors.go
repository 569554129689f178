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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDataset indicates a Dataset failed validation.
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrMissingGroundTruth indicates a query has no relevant-docs entry.
	ErrMissingGroundTruth = errors.New("missing ground truth for query")

	// ErrEmptyQueryID indicates a query identifier is empty.
	ErrEmptyQueryID = errors.New("query identifier cannot be empty")

	// ErrEmptyDocID indicates a document identifier is empty.
	ErrEmptyDocID = errors.New("document identifier cannot be empty")

	// ErrEmptyRunName indicates a run record has no name.
	ErrEmptyRunName = errors.New("run name cannot be empty")
)
