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

package hugot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/knights-analytics/hugot"
)

// Embedder implements ai.Embedder with a locally loaded ONNX
// sentence-embedding model run through a hugot feature-extraction
// pipeline. The session owning the native runtime lives on the Provider;
// the embedder only holds the pipeline invocation.
type Embedder struct {
	run    func(texts []string) ([][]float32, error)
	logger *slog.Logger
}

// newEmbedder builds the feature-extraction pipeline for the model at
// modelPath inside the given session.
func newEmbedder(session *hugot.Session, modelPath string) (*Embedder, error) {
	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embedeval-feature-extraction",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		return nil, fmt.Errorf("creating feature-extraction pipeline for %s: %w", modelPath, err)
	}

	return &Embedder{
		run: func(texts []string) ([][]float32, error) {
			result, err := pipeline.RunPipeline(texts)
			if err != nil {
				return nil, err
			}
			return result.Embeddings, nil
		},
		logger: slog.Default().With("component", "hugot-embedder"),
	}, nil
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		e.logger.Warn("pipeline returned empty result")
		return []float32{}, nil
	}
	return embeddings[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a
// batch. The pipeline computes the batch in one native call.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	embeddings, err := e.run(texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}

	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(embeddings))
	}
	return embeddings, nil
}
