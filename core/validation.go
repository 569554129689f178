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

import "fmt"

// Validate checks the structural integrity of a dataset.
//
// Empty corpus or query mappings are valid (evaluation degrades to an
// empty or vacuous result sequence). What is not valid: empty
// identifiers, or a query without a relevant-docs entry — ground truth
// is mandatory for every query in a well-formed dataset. The
// ground-truth document is not required to exist in the corpus.
func (d *Dataset) Validate() error {
	for id := range d.Corpus {
		if id == "" {
			return fmt.Errorf("%w: corpus: %w", ErrInvalidDataset, ErrEmptyDocID)
		}
	}
	for id := range d.Queries {
		if id == "" {
			return fmt.Errorf("%w: queries: %w", ErrInvalidDataset, ErrEmptyQueryID)
		}
		relevant, ok := d.RelevantDocs[id]
		if !ok || len(relevant) == 0 {
			return fmt.Errorf("%w: query %q: %w", ErrInvalidDataset, id, ErrMissingGroundTruth)
		}
		for _, doc := range relevant {
			if doc == "" {
				return fmt.Errorf("%w: query %q: %w", ErrInvalidDataset, id, ErrEmptyDocID)
			}
		}
	}
	return nil
}

// Validate checks the integrity of a run record before it is persisted.
func (r *RunRecord) Validate() error {
	if r.Name == "" {
		return ErrEmptyRunName
	}
	if r.TopK <= 0 {
		return fmt.Errorf("run %q: top-k must be positive, got %d", r.Name, r.TopK)
	}
	return nil
}
