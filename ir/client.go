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


package ir

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

// Client submits evaluation runs to a companion evaluator service over
// HTTP. The service owns metric definitions; the client only carries
// the dataset and the model reference across.
type Client struct {
	host       string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// WithHTTPClient overrides the underlying HTTP client. The default has
// no timeout because full-corpus evaluation is slow by nature; callers
// bound it through the request context instead.
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

// NewClient creates a client for the evaluator service at host.
func NewClient(host string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(host) == "" {
		return nil, ErrHostRequired
	}

	c := &Client{
		host:       strings.TrimRight(host, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default().With("component", "ir"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

type evaluationRequest struct {
	RunName      string              `json:"run_name"`
	Model        string              `json:"model"`
	Corpus       map[string]string   `json:"corpus"`
	Queries      map[string]string   `json:"queries"`
	RelevantDocs map[string][]string `json:"relevant_docs"`
}

type evaluationResponse struct {
	Metrics Metrics `json:"metrics"`
}

// Run posts the dataset and model reference to the evaluator and
// returns its metric table. The call blocks until the service has
// evaluated the full query set. Failures are fatal; there is no retry.
func (c *Client) Run(ctx context.Context, ds *core.Dataset, modelRef, runName string) (Metrics, error) {
	if strings.TrimSpace(modelRef) == "" {
		return nil, ErrModelRefRequired
	}
	if runName == "" {
		return nil, core.ErrEmptyRunName
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(evaluationRequest{
		RunName:      runName,
		Model:        modelRef,
		Corpus:       ds.Corpus,
		Queries:      ds.Queries,
		RelevantDocs: ds.RelevantDocs,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding evaluation request: %w", err)
	}

	c.logger.Info("submitting evaluation run",
		"run", runName,
		"model", modelRef,
		"queries", len(ds.Queries))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/evaluate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building evaluation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrEvaluationFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed evaluationResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrEvaluationFailed, err)
	}
	if len(parsed.Metrics) == 0 {
		return nil, fmt.Errorf("%w: evaluator returned no metrics", ErrEvaluationFailed)
	}

	c.logger.Info("evaluation run complete", "run", runName, "metrics", len(parsed.Metrics))
	return parsed.Metrics, nil
}
