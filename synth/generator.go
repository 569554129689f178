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


package synth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/embedeval/ai"
	"github.com/poiesic/embedeval/core"
)

const defaultQuestionsPerChunk = 2

// Generator builds evaluation datasets by chunking source text and
// generating questions per chunk.
type Generator struct {
	questions ai.QuestionGenerator
	chunk     ChunkFunc
	perChunk  int
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator) error

// WithChunker sets the chunking strategy. Default is a sentence chunker
// grouping three sentences per chunk.
func WithChunker(fn ChunkFunc) Option {
	return func(g *Generator) error {
		if fn == nil {
			return fmt.Errorf("chunker cannot be nil")
		}
		g.chunk = fn
		return nil
	}
}

// WithQuestionsPerChunk sets how many questions to request per chunk.
func WithQuestionsPerChunk(n int) Option {
	return func(g *Generator) error {
		if n <= 0 {
			return fmt.Errorf("questions per chunk must be positive, got %d", n)
		}
		g.perChunk = n
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		g.logger = logger
		return nil
	}
}

// NewGenerator creates a dataset generator around a question generator.
func NewGenerator(questions ai.QuestionGenerator, opts ...Option) (*Generator, error) {
	if questions == nil {
		return nil, ErrGeneratorRequired
	}

	g := &Generator{
		questions: questions,
		chunk:     SentenceChunker(3),
		perChunk:  defaultQuestionsPerChunk,
		logger:    slog.Default().With("component", "synth"),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Generate chunks the sources and builds a dataset where each chunk is
// a corpus document and each generated question's single relevant
// document is the chunk it was derived from. Document and query IDs are
// content hashes, so identical input reproduces identical IDs, and a
// chunk appearing in several sources dedupes to one corpus entry.
func (g *Generator) Generate(ctx context.Context, sources []string) (*core.Dataset, error) {
	var chunks []string
	for _, source := range sources {
		cs, err := g.chunk(source)
		if err != nil {
			return nil, fmt.Errorf("chunking source: %w", err)
		}
		chunks = append(chunks, cs...)
	}
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}

	g.logger.Info("generating dataset", "chunks", len(chunks), "questions_per_chunk", g.perChunk)

	ds := &core.Dataset{
		Corpus:       make(map[string]string, len(chunks)),
		Queries:      make(map[string]string),
		RelevantDocs: make(map[string][]string),
	}
	for _, chunk := range chunks {
		docID := core.HashID("d", chunk)
		ds.Corpus[docID] = chunk

		questions, err := g.questions.GenerateQuestions(ctx, chunk, g.perChunk)
		if err != nil {
			return nil, fmt.Errorf("generating questions for %s: %w", docID, err)
		}
		for _, question := range questions {
			// The query ID covers the source document as well, so the
			// same question text against two chunks stays two queries.
			queryID := core.HashID("q", docID+"\x00"+question)
			ds.Queries[queryID] = question
			ds.RelevantDocs[queryID] = []string{docID}
		}
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("generated dataset: %w", err)
	}

	g.logger.Info("dataset generated", "documents", len(ds.Corpus), "queries", len(ds.Queries))
	return ds, nil
}
