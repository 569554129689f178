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


package eval

import (
	"sort"

	"github.com/poiesic/embedeval/core"
)

// Summary is the aggregate of one labeled evaluation run, suitable for
// side-by-side tabular comparison. Labels are caller-assigned strings,
// never derived from provider internals.
type Summary struct {
	Label    string
	Provider string
	Total    int
	Hits     int
	HitRate  float64
}

// HitRate reduces a result sequence to the fraction of queries whose
// ground truth was retrieved. An empty sequence has no defined hit rate
// and returns ErrNoResults — callers must treat the metric as undefined
// rather than reading a silent zero.
func HitRate(results []core.QueryResult) (float64, error) {
	if len(results) == 0 {
		return 0, ErrNoResults
	}

	hits := 0
	for _, r := range results {
		if r.Hit {
			hits++
		}
	}
	return float64(hits) / float64(len(results)), nil
}

// Summarize aggregates one run's results under a caller-assigned label.
func Summarize(label, provider string, results []core.QueryResult) (Summary, error) {
	rate, err := HitRate(results)
	if err != nil {
		return Summary{}, err
	}

	hits := 0
	for _, r := range results {
		if r.Hit {
			hits++
		}
	}

	return Summary{
		Label:    label,
		Provider: provider,
		Total:    len(results),
		Hits:     hits,
		HitRate:  rate,
	}, nil
}

// SummarizeRun builds a Summary from a persisted run record.
func SummarizeRun(record *core.RunRecord) Summary {
	hits := 0
	for _, r := range record.Results {
		if r.Hit {
			hits++
		}
	}
	return Summary{
		Label:    record.Name,
		Provider: record.Provider,
		Total:    len(record.Results),
		Hits:     hits,
		HitRate:  record.HitRate,
	}
}

// Compare merges labeled summaries for side-by-side display, ordered by
// descending hit rate with label as tie-breaker.
func Compare(summaries ...Summary) []Summary {
	merged := make([]Summary, len(summaries))
	copy(merged, summaries)
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].HitRate != merged[j].HitRate {
			return merged[i].HitRate > merged[j].HitRate
		}
		return merged[i].Label < merged[j].Label
	})
	return merged
}
