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


package dataset

import (
	"fmt"

	"github.com/poiesic/embedeval/core"
)

// Split partitions a dataset into disjoint train and validation sets.
//
// The split is by document: the last valFraction share of the sorted
// corpus goes to validation, the rest to training. Each query follows
// its ground-truth document so a query is never evaluated against a
// corpus that cannot contain its answer. Queries whose ground truth is
// absent from the corpus stay in the training set. The assignment is
// deterministic for a given dataset.
func Split(ds *core.Dataset, valFraction float64) (*core.Dataset, *core.Dataset, error) {
	if valFraction <= 0 || valFraction >= 1 {
		return nil, nil, fmt.Errorf("%w: %g", ErrInvalidValFraction, valFraction)
	}
	if err := ds.Validate(); err != nil {
		return nil, nil, err
	}

	docIDs := ds.DocIDs()
	cut := len(docIDs) - int(float64(len(docIDs))*valFraction)

	train := emptyDataset()
	val := emptyDataset()

	inVal := make(map[string]bool, len(docIDs))
	for i, id := range docIDs {
		if i < cut {
			train.Corpus[id] = ds.Corpus[id]
		} else {
			val.Corpus[id] = ds.Corpus[id]
			inVal[id] = true
		}
	}

	for _, queryID := range ds.QueryIDs() {
		expected, err := ds.GroundTruth(queryID)
		if err != nil {
			return nil, nil, err
		}
		target := train
		if inVal[expected] {
			target = val
		}
		target.Queries[queryID] = ds.Queries[queryID]
		target.RelevantDocs[queryID] = ds.RelevantDocs[queryID]
	}

	return train, val, nil
}

func emptyDataset() *core.Dataset {
	return &core.Dataset{
		Corpus:       map[string]string{},
		Queries:      map[string]string{},
		RelevantDocs: map[string][]string{},
	}
}
