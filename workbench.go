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


package embedeval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/embedeval/ai"
	"github.com/poiesic/embedeval/ai/openai"
	"github.com/poiesic/embedeval/core"
	"github.com/poiesic/embedeval/eval"
	"github.com/poiesic/embedeval/storage"
	"github.com/poiesic/embedeval/storage/badger"
	"github.com/poiesic/embedeval/synth"
)

// Workbench ties an embedding provider to a run store so evaluation
// runs can be computed, persisted and compared.
type Workbench struct {
	backend  *badger.Backend
	runs     storage.RunRepository
	provider ai.Provider
	aiConfig *ai.Config
	logger   *slog.Logger
}

// WorkbenchOption configures a Workbench.
type WorkbenchOption func(*workbenchOptions)

type workbenchOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the configuration used to build the default
// OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) WorkbenchOption {
	return func(o *workbenchOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies an embedding provider directly, bypassing the
// default OpenAI-compatible provider. Used for local model directories
// and tests.
func WithProvider(provider ai.Provider) WorkbenchOption {
	return func(o *workbenchOptions) {
		o.provider = provider
	}
}

// NewWorkbench opens the run store at filePath and builds the
// embedding provider.
func NewWorkbench(filePath string, opts ...WorkbenchOption) (*Workbench, error) {
	options := &workbenchOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	runs := badger.NewRunRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			runs.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Workbench{
		backend:  backend,
		runs:     runs,
		provider: provider,
		aiConfig: options.aiConfig,
		logger:   slog.Default(),
	}, nil
}

func (w *Workbench) Close() error {
	if err := w.provider.Close(); err != nil {
		w.logger.Error("error closing embedding provider", "err", err)
	}

	if err := w.runs.Close(); err != nil {
		w.logger.Error("error closing run repository", "err", err)
		return err
	}
	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (w *Workbench) Provider() ai.Provider {
	return w.provider
}

func (w *Workbench) RunRepository() storage.RunRepository {
	return w.runs
}

func (w *Workbench) NewEvaluator(opts ...eval.Option) (*eval.Evaluator, error) {
	return eval.NewEvaluator(w.provider, opts...)
}

func (w *Workbench) NewDatasetGenerator(opts ...synth.Option) (*synth.Generator, error) {
	generator, err := openai.NewQuestionGenerator(w.aiConfig)
	if err != nil {
		return nil, err
	}
	return synth.NewGenerator(generator, opts...)
}

// EvaluateHitRate runs a hit-rate evaluation over the dataset, persists
// the run under runName and returns its summary.
func (w *Workbench) EvaluateHitRate(ctx context.Context, ds *core.Dataset, runName string, opts ...eval.Option) (eval.Summary, error) {
	if runName == "" {
		return eval.Summary{}, core.ErrEmptyRunName
	}

	evaluator, err := w.NewEvaluator(opts...)
	if err != nil {
		return eval.Summary{}, err
	}

	results, err := evaluator.Evaluate(ctx, ds)
	if err != nil {
		return eval.Summary{}, err
	}

	summary, err := eval.Summarize(runName, w.provider.Describe(), results)
	if err != nil {
		return eval.Summary{}, err
	}

	record := &core.RunRecord{
		Name:               runName,
		Provider:           w.provider.Describe(),
		DatasetFingerprint: ds.Fingerprint(),
		TopK:               evaluator.TopK(),
		Results:            results,
		HitRate:            summary.HitRate,
		CreatedAt:          time.Now().UTC(),
	}
	if err := w.runs.SaveRun(ctx, record); err != nil {
		return eval.Summary{}, fmt.Errorf("saving run %s: %w", runName, err)
	}

	w.logger.Info("evaluation run saved",
		"run", runName,
		"provider", record.Provider,
		"hit_rate", summary.HitRate,
		"queries", summary.Total)
	return summary, nil
}

// Compare loads previously stored runs and merges their summaries for
// side-by-side display, ordered by descending hit rate.
func (w *Workbench) Compare(ctx context.Context, runNames ...string) ([]eval.Summary, error) {
	summaries := make([]eval.Summary, 0, len(runNames))
	for _, name := range runNames {
		record, err := w.runs.GetRun(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("loading run %s: %w", name, err)
		}
		summaries = append(summaries, eval.SummarizeRun(record))
	}
	return eval.Compare(summaries...), nil
}
