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

import "errors"

var (
	// ErrDocumentNotInCorpus is returned when a query's ground-truth
	// document ID has no corpus entry. Pair construction needs the
	// document text, so this is fatal, unlike evaluation where an absent
	// ground truth simply scores a miss.
	ErrDocumentNotInCorpus = errors.New("ground-truth document not in corpus")

	// ErrNoPairs is returned when a dataset yields no training pairs.
	ErrNoPairs = errors.New("dataset produced no training pairs")

	// ErrHostRequired is returned when the training service host is empty.
	ErrHostRequired = errors.New("training host required")

	// ErrTrainingFailed is returned when the training service rejects or
	// aborts a job. No retry; the caller fixes the configuration.
	ErrTrainingFailed = errors.New("training failed")
)
