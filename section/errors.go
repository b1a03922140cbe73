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


package section

import "errors"

var (
	// ErrRegistryRequired indicates a nil pattern registry.
	ErrRegistryRequired = errors.New("pattern registry is required")

	// ErrNoHeadlinePatterns indicates a section type with no registered headline patterns.
	ErrNoHeadlinePatterns = errors.New("no headline patterns for section type")

	// ErrEmbeddingsMismatch indicates token embeddings not aligned with the document tokens.
	ErrEmbeddingsMismatch = errors.New("embeddings do not match document tokens")
)
