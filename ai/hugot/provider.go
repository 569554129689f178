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

// Package hugot provides an ai.Provider backed by a locally loaded ONNX
// sentence-embedding model. The model is addressed by directory path:
// a pretrained export or the output directory written by the fine-tuning
// service both load the same way.
package hugot

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/knights-analytics/hugot"
	"github.com/poiesic/embedeval/ai"
)

// Provider implements ai.Provider with a hugot session owning the native
// model handle. Close destroys the session; the provider must not be used
// afterwards.
type Provider struct {
	session   *hugot.Session
	embedder  *Embedder
	modelPath string
	logger    *slog.Logger
}

// NewProvider loads the sentence-embedding model at modelPath.
// A missing or unreadable model directory is a fatal configuration error,
// surfaced immediately rather than deferred to the first embedding call.
//
// Returns ai.Provider interface to enforce abstraction.
func NewProvider(modelPath string) (ai.Provider, error) {
	info, err := os.Stat(modelPath)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", modelPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("loading model %s: not a directory", modelPath)
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("creating hugot session: %w", err)
	}

	embedder, err := newEmbedder(session, modelPath)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("%w (cleanup error: %v)", err, destroyErr)
		}
		return nil, err
	}

	logger := slog.Default().With("component", "hugot-provider")
	logger.Info("loaded local embedding model", "path", modelPath)

	return &Provider{
		session:   session,
		embedder:  embedder,
		modelPath: modelPath,
		logger:    logger,
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Describe returns a short description of the backing model for reports.
func (p *Provider) Describe() string {
	return "local/" + filepath.Base(p.modelPath)
}

// Close destroys the hugot session and releases the native model handle.
func (p *Provider) Close() error {
	p.logger.Debug("destroying hugot session", "path", p.modelPath)
	return p.session.Destroy()
}
