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


package eval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/embedeval/ai"
	"github.com/poiesic/embedeval/core"
	"github.com/poiesic/embedeval/index"
)

const (
	// DefaultTopK is the default number of nearest-neighbor candidates
	// retrieved per query.
	DefaultTopK = 5
)

// Evaluator measures, for a fixed embedding provider and dataset, the
// fraction of queries whose ground-truth document appears among the
// top-k nearest neighbors when the corpus is indexed with that
// provider's embeddings.
type Evaluator struct {
	provider  ai.Provider
	topK      int
	verbose   bool
	indexOpts []index.Option
	logger    *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator) error

// WithTopK sets the number of candidates retrieved per query.
// Default is DefaultTopK.
func WithTopK(k int) Option {
	return func(e *Evaluator) error {
		if k < 1 {
			return fmt.Errorf("top-k must be positive, got %d", k)
		}
		e.topK = k
		return nil
	}
}

// WithVerbose enables per-query outcome logging.
func WithVerbose(verbose bool) Option {
	return func(e *Evaluator) error {
		e.verbose = verbose
		return nil
	}
}

// WithIndexOptions passes options through to index construction
// (batch size, pool size, progress reporting).
func WithIndexOptions(opts ...index.Option) Option {
	return func(e *Evaluator) error {
		e.indexOpts = opts
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEvaluator creates a hit-rate evaluator over the given provider.
func NewEvaluator(provider ai.Provider, opts ...Option) (*Evaluator, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	e := &Evaluator{
		provider: provider,
		topK:     DefaultTopK,
		logger:   slog.Default().With("component", "evaluator"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Evaluate runs the hit-rate procedure: embed every corpus document once
// into an ephemeral index, then for each query retrieve the top-k nearest
// documents and record whether the ground truth is among them.
//
// Returns exactly one result per query, in sorted query-ID order. A query
// without a relevant-docs entry aborts the run (malformed dataset); a
// ground-truth document absent from the corpus does not — the query simply
// cannot hit. An empty query set yields an empty result slice; an empty
// corpus yields all-miss results with empty retrieval.
func (e *Evaluator) Evaluate(ctx context.Context, ds *core.Dataset) ([]core.QueryResult, error) {
	idx, err := index.Build(ctx, e.provider.Embedder(), ds.Corpus, e.indexOpts...)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}

	e.logger.Info("evaluating hit rate",
		"provider", e.provider.Describe(),
		"documents", idx.Size(),
		"queries", len(ds.Queries),
		"topK", e.topK)

	results := make([]core.QueryResult, 0, len(ds.Queries))
	for _, queryID := range ds.QueryIDs() {
		expected, err := ds.GroundTruth(queryID)
		if err != nil {
			return nil, err
		}

		matches, err := idx.Query(ctx, ds.Queries[queryID], e.topK)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", queryID, err)
		}

		retrieved := make([]string, len(matches))
		for i, m := range matches {
			retrieved[i] = m.DocID
		}

		result := core.NewQueryResult(queryID, expected, retrieved)
		if e.verbose {
			e.logger.Info("query evaluated",
				"queryID", queryID,
				"expected", expected,
				"retrieved", retrieved,
				"hit", result.Hit)
		}
		results = append(results, result)
	}

	return results, nil
}

// TopK returns the configured retrieval depth.
func (e *Evaluator) TopK() int {
	return e.topK
}
