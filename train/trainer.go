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


package train

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/poiesic/embedeval/core"
)

// Trainer fine-tunes an embedding model on a training dataset, using
// the validation dataset for in-training monitoring. On success the
// tuned model is available under the configured output directory.
type Trainer interface {
	Train(ctx context.Context, trainDS, valDS *core.Dataset, cfg Config) (string, error)
}

// Client submits fine-tuning jobs to a companion training service over
// HTTP and blocks until the job completes.
type Client struct {
	host       string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// WithHTTPClient overrides the underlying HTTP client. The default has
// no timeout; training jobs run for as long as the epochs demand, and
// callers bound them through the request context.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// NewClient creates a client for the training service at host.
func NewClient(host string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(host) == "" {
		return nil, ErrHostRequired
	}

	c := &Client{
		host:       strings.TrimRight(host, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default().With("component", "train"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

type trainingRequest struct {
	Config Config `json:"config"`
	Pairs  []Pair `json:"pairs"`

	// The monitoring evaluator on the service side runs against the
	// validation dataset between eval steps.
	ValCorpus       map[string]string   `json:"val_corpus"`
	ValQueries      map[string]string   `json:"val_queries"`
	ValRelevantDocs map[string][]string `json:"val_relevant_docs"`
}

type trainingResponse struct {
	ModelDir string `json:"model_dir"`
}

// Train builds training pairs from trainDS, submits them with the
// hyperparameters and the validation mappings, and blocks until the
// service reports completion. It returns the directory holding the
// tuned model. Failures are fatal; there is no retry.
func (c *Client) Train(ctx context.Context, trainDS, valDS *core.Dataset, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if err := valDS.Validate(); err != nil {
		return "", fmt.Errorf("validation dataset: %w", err)
	}

	pairs, err := BuildPairs(trainDS)
	if err != nil {
		return "", err
	}
	if len(pairs) == 0 {
		return "", ErrNoPairs
	}

	payload, err := json.Marshal(trainingRequest{
		Config:          cfg,
		Pairs:           pairs,
		ValCorpus:       valDS.Corpus,
		ValQueries:      valDS.Queries,
		ValRelevantDocs: valDS.RelevantDocs,
	})
	if err != nil {
		return "", fmt.Errorf("encoding training request: %w", err)
	}

	c.logger.Info("submitting training job",
		"base_model", cfg.BaseModel,
		"pairs", len(pairs),
		"epochs", cfg.Epochs,
		"batch_size", cfg.BatchSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/train", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building training request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTrainingFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrTrainingFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed trainingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrTrainingFailed, err)
	}
	if parsed.ModelDir == "" {
		parsed.ModelDir = cfg.OutputDir
	}

	c.logger.Info("training job complete", "model_dir", parsed.ModelDir)
	return parsed.ModelDir, nil
}
