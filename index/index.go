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


package index

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	chromem "github.com/philippgille/chromem-go"
	"github.com/poiesic/embedeval/ai"
)

const (
	// DefaultBatchSize is the number of documents embedded per batch call.
	DefaultBatchSize = 32

	collectionName = "corpus"
)

// Index is an ephemeral in-memory similarity index over a document
// corpus, keyed by document identifier. It is rebuilt from scratch for
// every evaluation run and never persisted; similarity ranking is
// delegated to chromem-go (cosine similarity).
type Index struct {
	collection *chromem.Collection
	logger     *slog.Logger
}

// Match is a single nearest-neighbor result.
type Match struct {
	DocID   string
	Content string
	Score   float32
}

// builder carries build-time options.
type builder struct {
	batchSize int
	poolSize  int
	tracker   *ProgressTracker
	logger    *slog.Logger
}

// Option configures index construction.
type Option func(*builder) error

// WithBatchSize sets the number of documents per embedding batch.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(b *builder) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		b.batchSize = size
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent batch embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *builder) error {
		if size < 1 {
			size = 1
		}
		b.poolSize = size
		return nil
	}
}

// WithProgress attaches a progress tracker reporting corpus embedding
// progress. Default is no reporting.
func WithProgress(tracker *ProgressTracker) Option {
	return func(b *builder) error {
		b.tracker = tracker
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// Build embeds every corpus document once through the embedder and
// assembles the in-memory index. Documents are embedded in batches
// fanned out over a worker pool; any batch failure aborts the build
// (no retries, no partial index).
//
// An empty corpus yields a valid, empty index.
func Build(ctx context.Context, embedder ai.Embedder, corpus map[string]string, opts ...Option) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	b := &builder{
		batchSize: DefaultBatchSize,
		poolSize:  poolSize,
		logger:    slog.Default().With("component", "index"),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	db := chromem.NewDB()
	// The embedding func is only consulted for query text; corpus
	// embeddings are computed up front in batches.
	collection, err := db.CreateCollection(collectionName, nil, queryEmbeddingFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}

	idx := &Index{collection: collection, logger: b.logger}
	if len(corpus) == 0 {
		b.logger.Debug("building index over empty corpus")
		return idx, nil
	}

	docIDs := sortedKeys(corpus)
	embeddings, err := embedBatches(ctx, embedder, corpus, docIDs, b)
	if err != nil {
		return nil, err
	}

	docs := make([]chromem.Document, len(docIDs))
	for i, id := range docIDs {
		docs[i] = chromem.Document{
			ID:        id,
			Content:   corpus[id],
			Embedding: embeddings[i],
		}
	}

	// Concurrency of 1: embeddings are already computed.
	if err := collection.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("adding documents: %w", err)
	}

	b.logger.Debug("built index", "documents", len(docs))
	return idx, nil
}

// Query embeds the query text and returns the k nearest documents,
// ordered by similarity. k is capped at the index size; an empty index
// returns an empty result.
func (x *Index) Query(ctx context.Context, text string, k int) ([]Match, error) {
	if k <= 0 {
		return nil, fmt.Errorf("top-k must be positive, got %d", k)
	}

	count := x.collection.Count()
	if count == 0 {
		return []Match{}, nil
	}
	if k > count {
		k = count
	}

	results, err := x.collection.Query(ctx, text, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			DocID:   r.ID,
			Content: r.Content,
			Score:   r.Similarity,
		}
	}
	return matches, nil
}

// Size returns the number of indexed documents.
func (x *Index) Size() int {
	return x.collection.Count()
}

// queryEmbeddingFunc bridges ai.Embedder to chromem's embedding callback.
func queryEmbeddingFunc(embedder ai.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedText(ctx, text)
	}
}

// embedBatches embeds the corpus in batchSize chunks fanned out over an
// ants pool, preserving docIDs order in the returned slice.
func embedBatches(ctx context.Context, embedder ai.Embedder, corpus map[string]string, docIDs []string, b *builder) ([][]float32, error) {
	pool, err := ants.NewPool(b.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	if b.tracker != nil {
		b.tracker.Start()
		defer b.tracker.Finish()
	}

	embeddings := make([][]float32, len(docIDs))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(docIDs); start += b.batchSize {
		end := min(start+b.batchSize, len(docIDs))
		texts := make([]string, end-start)
		for i, id := range docIDs[start:end] {
			texts[i] = corpus[id]
		}

		offset := start
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			mu.Lock()
			aborted := firstErr != nil
			mu.Unlock()
			if aborted {
				return
			}

			batch, err := embedder.EmbedTexts(ctx, texts)
			if err == nil && len(batch) != len(texts) {
				err = fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(batch))
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			copy(embeddings[offset:], batch)
			if b.tracker != nil {
				b.tracker.Increment(len(batch))
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, fmt.Errorf("embedding corpus: %w", firstErr)
	}
	return embeddings, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Stable build order keeps runs reproducible.
	sort.Strings(keys)
	return keys
}
