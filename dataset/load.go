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


package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/embedeval/core"
)

// Load reads a dataset from a JSON file with keys "corpus", "queries"
// and "relevant_docs". Failures are fatal and carry the offending path;
// the loaded dataset is validated before it is returned.
func Load(path string) (*core.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	var ds core.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}

	// Absent keys decode to nil maps; normalize so callers can range freely.
	if ds.Corpus == nil {
		ds.Corpus = map[string]string{}
	}
	if ds.Queries == nil {
		ds.Queries = map[string]string{}
	}
	if ds.RelevantDocs == nil {
		ds.RelevantDocs = map[string][]string{}
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	return &ds, nil
}

// Save writes a dataset to a JSON file, creating parent directories as
// needed.
func Save(path string, ds *core.Dataset) error {
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("dataset %s: %w", path, err)
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dataset %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing dataset %s: %w", path, err)
	}
	return nil
}
