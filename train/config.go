package train

import (
	"fmt"
	"strings"
)

// Default hyperparameters, passed through to the training service
// unchanged.
const (
	DefaultBatchSize = 32
	DefaultEpochs    = 4
	DefaultEvalSteps = 50
)

// Config carries fine-tuning hyperparameters. The values are opaque to
// the workbench; the training service interprets them.
type Config struct {
	// BaseModel is the model reference to fine-tune.
	BaseModel string `json:"base_model"`

	// OutputDir is where the service persists the tuned model. The
	// directory is later reopened as a local embedding provider.
	OutputDir string `json:"output_dir"`

	BatchSize int `json:"batch_size"`
	Epochs    int `json:"epochs"`
	EvalSteps int `json:"eval_steps"`
}

// DefaultConfig returns a Config with default hyperparameters for the
// given base model and output directory.
func DefaultConfig(baseModel, outputDir string) Config {
	return Config{
		BaseModel: baseModel,
		OutputDir: outputDir,
		BatchSize: DefaultBatchSize,
		Epochs:    DefaultEpochs,
		EvalSteps: DefaultEvalSteps,
	}
}

// Validate checks the configuration before submission.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseModel) == "" {
		return fmt.Errorf("base model cannot be empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.EvalSteps <= 0 {
		return fmt.Errorf("eval steps must be positive, got %d", c.EvalSteps)
	}
	return nil
}
