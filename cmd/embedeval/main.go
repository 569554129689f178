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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/embedeval"
	"github.com/poiesic/embedeval/ai"
	"github.com/poiesic/embedeval/ai/hugot"
	"github.com/poiesic/embedeval/ai/openai"
	"github.com/poiesic/embedeval/dataset"
	"github.com/poiesic/embedeval/eval"
	"github.com/poiesic/embedeval/ir"
	"github.com/poiesic/embedeval/synth"
	"github.com/poiesic/embedeval/train"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "embedeval",
		Usage: "Offline workbench for evaluating and fine-tuning embedding models",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "Generate a question/document dataset from source text files",
				ArgsUsage: "FILE [FILE...]",
				Action:    generateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Path for the generated dataset JSON",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "generator-host",
						Usage: "Question generator service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "generator-model",
						Usage: "Question generator model name",
						Value: "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "questions-per-chunk",
						Usage: "Number of questions to generate per corpus chunk",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "chunk-sentences",
						Usage: "Sentences per corpus chunk",
						Value: 3,
					},
					&cli.Float64Flag{
						Name:  "val-fraction",
						Usage: "Also write a validation split with this document fraction (0 disables)",
					},
					&cli.StringFlag{
						Name:  "val-output",
						Usage: "Path for the validation dataset JSON (default: <output> with _val suffix)",
					},
				},
			},
			{
				Name:   "evaluate",
				Usage:  "Evaluate an embedding provider's hit rate on a dataset",
				Action: evaluateCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{
						Name:     "dataset",
						Usage:    "Path to the dataset JSON",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the run store directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "run",
						Usage:    "Run name for persistence and reports",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of nearest documents to retrieve per query",
						Value: eval.DefaultTopK,
					},
					&cli.StringFlag{
						Name:  "results-dir",
						Usage: "Directory for per-query result CSVs (skipped if empty)",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Log the retrieved documents for every query",
					},
				),
			},
			{
				Name:   "ir-evaluate",
				Usage:  "Run the external multi-metric IR evaluator against a dataset",
				Action: irEvaluateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dataset",
						Usage:    "Path to the dataset JSON",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "eval-host",
						Usage:    "Evaluator service host URL",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "model",
						Usage:    "Model reference to evaluate",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "run",
						Usage:    "Run name for the metrics report",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "results-dir",
						Usage: "Directory for the metrics CSV",
						Value: "results",
					},
				},
			},
			{
				Name:   "finetune",
				Usage:  "Fine-tune an embedding model on a dataset",
				Action: finetuneCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dataset",
						Usage:    "Path to the dataset JSON",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "train-host",
						Usage:    "Training service host URL",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "base-model",
						Usage:    "Model reference to fine-tune",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "output-dir",
						Usage:    "Directory where the tuned model is persisted",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "val-fraction",
						Usage: "Fraction of documents held out for the monitoring evaluator",
						Value: 0.1,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Training batch size",
						Value: train.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "epochs",
						Usage: "Training epochs",
						Value: train.DefaultEpochs,
					},
					&cli.IntFlag{
						Name:  "eval-steps",
						Usage: "Steps between monitoring evaluations",
						Value: train.DefaultEvalSteps,
					},
				},
			},
			{
				Name:      "compare",
				Usage:     "Compare previously stored evaluation runs side by side",
				ArgsUsage: "RUN [RUN...]",
				Action:    compareCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the run store directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "results-dir",
						Usage: "Directory for the summary CSV (skipped if empty)",
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "List stored evaluation runs",
				Action: runsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the run store directory",
						Required: true,
					},
				},
				Subcommands: []*cli.Command{
					{
						Name:      "delete",
						Usage:     "Delete a stored evaluation run",
						ArgsUsage: "RUN",
						Action:    deleteRunCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "db",
								Aliases:  []string{"d"},
								Usage:    "Path to the run store directory",
								Required: true,
							},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// providerFlags are shared by commands that embed with either a remote
// OpenAI-compatible service or a local model directory.
func providerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "model-dir",
			Usage: "Local model directory (overrides the embedding service)",
		},
	}
}

// buildProvider selects a local or remote embedding provider from flags.
func buildProvider(c *cli.Context) (ai.Provider, error) {
	if modelDir := c.String("model-dir"); modelDir != "" {
		return hugot.NewProvider(modelDir)
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return openai.NewProvider(aiConfig)
}

func generateCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("at least one source file is required")
	}

	var sources []string
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading source %s: %w", path, err)
		}
		sources = append(sources, string(data))
	}

	aiConfig := ai.NewConfig(
		ai.WithGeneratorHost(c.String("generator-host")),
		ai.WithGeneratorModel(c.String("generator-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	questions, err := openai.NewQuestionGenerator(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create question generator: %w", err)
	}

	generator, err := synth.NewGenerator(questions,
		synth.WithChunker(synth.SentenceChunker(c.Int("chunk-sentences"))),
		synth.WithQuestionsPerChunk(c.Int("questions-per-chunk")))
	if err != nil {
		return err
	}

	ds, err := generator.Generate(ctx, sources)
	if err != nil {
		return fmt.Errorf("dataset generation failed: %w", err)
	}

	output := c.String("output")
	if valFraction := c.Float64("val-fraction"); valFraction > 0 {
		trainDS, valDS, err := dataset.Split(ds, valFraction)
		if err != nil {
			return err
		}
		valOutput := c.String("val-output")
		if valOutput == "" {
			valOutput = strings.TrimSuffix(output, ".json") + "_val.json"
		}
		if err := dataset.Save(output, trainDS); err != nil {
			return err
		}
		if err := dataset.Save(valOutput, valDS); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Documents: %d train, %d val\n", len(trainDS.Corpus), len(valDS.Corpus))
		fmt.Fprintf(os.Stderr, "Queries: %d train, %d val\n", len(trainDS.Queries), len(valDS.Queries))
		fmt.Fprintf(os.Stderr, "Datasets written to %s and %s\n", output, valOutput)
		return nil
	}

	if err := dataset.Save(output, ds); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Documents: %d\n", len(ds.Corpus))
	fmt.Fprintf(os.Stderr, "Queries: %d\n", len(ds.Queries))
	fmt.Fprintf(os.Stderr, "Dataset written to %s\n", output)
	return nil
}

func evaluateCommand(c *cli.Context) error {
	ctx := context.Background()

	ds, err := dataset.Load(c.String("dataset"))
	if err != nil {
		return err
	}

	provider, err := buildProvider(c)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	w, err := embedeval.NewWorkbench(c.String("db"), embedeval.WithProvider(provider))
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer w.Close()

	runName := c.String("run")
	summary, err := w.EvaluateHitRate(ctx, ds, runName,
		eval.WithTopK(c.Int("top-k")),
		eval.WithVerbose(c.Bool("verbose")))
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	fmt.Printf("Run: %s\n", summary.Label)
	fmt.Printf("Provider: %s\n", summary.Provider)
	fmt.Printf("Queries: %d\n", summary.Total)
	fmt.Printf("Hits: %d\n", summary.Hits)
	fmt.Printf("Hit rate: %.4f\n", summary.HitRate)

	if dir := c.String("results-dir"); dir != "" {
		record, err := w.RunRepository().GetRun(ctx, runName)
		if err != nil {
			return err
		}
		path := eval.ResultsPath(dir, runName)
		if err := eval.WriteResultsCSV(path, record.Results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Results written to %s\n", path)
	}
	return nil
}

func irEvaluateCommand(c *cli.Context) error {
	ctx := context.Background()

	ds, err := dataset.Load(c.String("dataset"))
	if err != nil {
		return err
	}

	client, err := ir.NewClient(c.String("eval-host"))
	if err != nil {
		return err
	}

	runName := c.String("run")
	metrics, err := client.Run(ctx, ds, c.String("model"), runName)
	if err != nil {
		return err
	}

	for _, name := range metrics.Names() {
		fmt.Printf("%s: %.6f\n", name, metrics[name])
	}

	path := ir.MetricsPath(c.String("results-dir"), runName)
	if err := ir.WriteMetricsCSV(path, runName, metrics); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Metrics written to %s\n", path)
	return nil
}

func finetuneCommand(c *cli.Context) error {
	ctx := context.Background()

	ds, err := dataset.Load(c.String("dataset"))
	if err != nil {
		return err
	}

	trainDS, valDS, err := dataset.Split(ds, c.Float64("val-fraction"))
	if err != nil {
		return err
	}

	client, err := train.NewClient(c.String("train-host"))
	if err != nil {
		return err
	}

	cfg := train.Config{
		BaseModel: c.String("base-model"),
		OutputDir: c.String("output-dir"),
		BatchSize: c.Int("batch-size"),
		Epochs:    c.Int("epochs"),
		EvalSteps: c.Int("eval-steps"),
	}

	fmt.Fprintf(os.Stderr, "Base model: %s\n", cfg.BaseModel)
	fmt.Fprintf(os.Stderr, "Training queries: %d\n", len(trainDS.Queries))
	fmt.Fprintf(os.Stderr, "Validation queries: %d\n", len(valDS.Queries))
	fmt.Fprintln(os.Stderr)

	modelDir, err := client.Train(ctx, trainDS, valDS, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Tuned model written to %s\n", modelDir)
	return nil
}

func compareCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("at least one run name is required")
	}

	w, err := embedeval.NewWorkbench(c.String("db"),
		embedeval.WithProvider(noopProvider{}))
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer w.Close()

	summaries, err := w.Compare(ctx, c.Args().Slice()...)
	if err != nil {
		return err
	}

	fmt.Printf("%-20s %-30s %8s %6s %9s\n", "RUN", "PROVIDER", "QUERIES", "HITS", "HIT RATE")
	for _, s := range summaries {
		fmt.Printf("%-20s %-30s %8d %6d %9.4f\n", s.Label, s.Provider, s.Total, s.Hits, s.HitRate)
	}

	if dir := c.String("results-dir"); dir != "" {
		path := eval.SummaryPath(dir)
		if err := eval.WriteSummaryCSV(path, summaries); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Summary written to %s\n", path)
	}
	return nil
}

func runsCommand(c *cli.Context) error {
	ctx := context.Background()

	w, err := embedeval.NewWorkbench(c.String("db"),
		embedeval.WithProvider(noopProvider{}))
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer w.Close()

	records, err := w.RunRepository().ListRuns(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No stored runs.")
		return nil
	}

	fmt.Printf("%-20s %-30s %6s %9s %-20s\n", "RUN", "PROVIDER", "TOP-K", "HIT RATE", "CREATED")
	for _, r := range records {
		fmt.Printf("%-20s %-30s %6d %9.4f %-20s\n",
			r.Name, r.Provider, r.TopK, r.HitRate, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func deleteRunCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("exactly one run name is required")
	}
	runName := c.Args().First()

	w, err := embedeval.NewWorkbench(c.String("db"),
		embedeval.WithProvider(noopProvider{}))
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer w.Close()

	if err := w.RunRepository().DeleteRun(ctx, runName); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Deleted run %s\n", runName)
	return nil
}

// noopProvider satisfies ai.Provider for commands that only touch the
// run store and never embed.
type noopProvider struct{}

func (noopProvider) Embedder() ai.Embedder { return nil }
func (noopProvider) Describe() string      { return "none" }
func (noopProvider) Close() error          { return nil }

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
