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

import (
	"encoding/hex"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Dataset is a retrieval-evaluation dataset: a document corpus, a set of
// queries, and the ground-truth mapping between them. Datasets are loaded
// once and treated as read-only for the lifetime of an evaluation run.
type Dataset struct {
	// Corpus maps document identifiers to document text.
	Corpus map[string]string `json:"corpus"`

	// Queries maps query identifiers to query text.
	Queries map[string]string `json:"queries"`

	// RelevantDocs maps each query identifier to the ordered document
	// identifiers considered relevant to it. Only the first element is
	// treated as ground truth.
	RelevantDocs map[string][]string `json:"relevant_docs"`
}

// QueryIDs returns the query identifiers in sorted order.
// Map iteration order is randomized in Go, so all per-query processing
// walks queries in sorted-ID order to keep runs reproducible.
func (d *Dataset) QueryIDs() []string {
	ids := make([]string, 0, len(d.Queries))
	for id := range d.Queries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DocIDs returns the corpus document identifiers in sorted order.
func (d *Dataset) DocIDs() []string {
	ids := make([]string, 0, len(d.Corpus))
	for id := range d.Corpus {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GroundTruth returns the first relevant document identifier for the query.
// A query without a relevant-docs entry is a malformed dataset and returns
// ErrMissingGroundTruth; the ground-truth document is mandatory for every
// query even though it need not exist in the corpus.
func (d *Dataset) GroundTruth(queryID string) (string, error) {
	relevant, ok := d.RelevantDocs[queryID]
	if !ok || len(relevant) == 0 {
		return "", fmt.Errorf("query %q: %w", queryID, ErrMissingGroundTruth)
	}
	return relevant[0], nil
}

// Fingerprint returns a deterministic BLAKE2b content hash over the three
// mappings. Stored runs carry the fingerprint so results can be tied back
// to the exact dataset they were computed on.
func (d *Dataset) Fingerprint() string {
	h, _ := blake2b.New(16, nil)
	for _, id := range d.DocIDs() {
		h.Write([]byte("c:" + id + "=" + d.Corpus[id] + "\n"))
	}
	for _, id := range d.QueryIDs() {
		h.Write([]byte("q:" + id + "=" + d.Queries[id] + "\n"))
		for _, doc := range d.RelevantDocs[id] {
			h.Write([]byte("r:" + id + "->" + doc + "\n"))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashID generates a deterministic identifier from text content using
// BLAKE2b hashing. Identical content produces identical identifiers.
func HashID(prefix, text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return prefix + "-" + hex.EncodeToString(h.Sum(nil))
}

// QueryResult records the outcome of retrieval for a single query: the
// ground-truth document, the documents actually retrieved, and whether
// the ground truth was among them. Results are immutable once produced.
type QueryResult struct {
	QueryID   string   `json:"query_id"`
	Expected  string   `json:"expected"`
	Retrieved []string `json:"retrieved"`
	Hit       bool     `json:"hit"`
}

// NewQueryResult builds a QueryResult, deriving the hit flag from
// membership of the expected identifier in the retrieved sequence.
func NewQueryResult(queryID, expected string, retrieved []string) QueryResult {
	return QueryResult{
		QueryID:   queryID,
		Expected:  expected,
		Retrieved: retrieved,
		Hit:       slices.Contains(retrieved, expected),
	}
}

// RunRecord is a persisted evaluation run: one labeled pass of the
// hit-rate evaluator over a dataset with a fixed provider and top-k.
type RunRecord struct {
	// Name is the caller-assigned run label used for reporting and as
	// the storage key.
	Name string `json:"name"`

	// Provider describes the embedding provider the run was computed
	// with (e.g. "openai/text-embedding-3-small").
	Provider string `json:"provider"`

	// DatasetFingerprint ties the run to the dataset contents.
	DatasetFingerprint string `json:"dataset_fingerprint"`

	TopK      int           `json:"top_k"`
	Results   []QueryResult `json:"results"`
	HitRate   float64       `json:"hit_rate"`
	CreatedAt time.Time     `json:"created_at"`
}
