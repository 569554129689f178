package ir

import (
	"context"
	"sort"

	"github.com/poiesic/embedeval/core"
)

// Metrics is the metric table returned by an external evaluator, keyed
// by metric name. The workbench treats names and values as opaque.
type Metrics map[string]float64

// Names returns the metric names in sorted order for stable display and
// persistence.
func (m Metrics) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runner evaluates a model reference against a dataset and returns the
// evaluator's metric table.
type Runner interface {
	Run(ctx context.Context, ds *core.Dataset, modelRef, runName string) (Metrics, error)
}
