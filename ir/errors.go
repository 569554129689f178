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

import "errors"

var (
	// ErrHostRequired is returned when the evaluator service host is empty.
	ErrHostRequired = errors.New("evaluator host required")

	// ErrModelRefRequired is returned when no model reference is given.
	ErrModelRefRequired = errors.New("model reference required")

	// ErrEvaluationFailed is returned when the evaluator service rejects
	// a run. An unreachable or failing service is a configuration error,
	// not a condition to retry.
	ErrEvaluationFailed = errors.New("external evaluation failed")
)
