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


// Package train drives fine-tuning of an embedding model against a
// question/document dataset.
//
// The training algorithm itself lives in a companion service; this
// package constructs the (query, positive document) pairs, carries the
// hyperparameters through, and blocks until the service has written the
// tuned model to the output directory. Each query contributes exactly
// one pair, built from its first relevant document.
package train
