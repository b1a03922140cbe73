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


package pattern

import "errors"

var (
	// ErrNoWindowFits is returned when every window configuration is longer than the text.
	ErrNoWindowFits = errors.New("no window configuration fits the text")

	// ErrInvalidPadding is returned when the right padding leaves no searchable position.
	ErrInvalidPadding = errors.New("invalid right padding")

	// ErrNotEmbedded is returned when matching a pattern whose embeddings were never set.
	ErrNotEmbedded = errors.New("pattern is not embedded")

	// ErrEmptyGroup is returned when evaluating a combinator without members.
	ErrEmptyGroup = errors.New("combinator has no members")

	// ErrZeroWeight is returned when the weights of a compound pattern sum to zero.
	ErrZeroWeight = errors.New("total compound weight is zero")

	// ErrMemberRequired is returned when adding a nil member to a combinator.
	ErrMemberRequired = errors.New("member required")

	// ErrDuplicateName is returned when registering a name twice.
	ErrDuplicateName = errors.New("duplicate pattern name")

	// ErrRegistrySealed is returned when registering after embedding.
	ErrRegistrySealed = errors.New("registry already embedded")

	// ErrUnknownPattern is returned when a name is not registered.
	ErrUnknownPattern = errors.New("unknown pattern")

	// ErrEmbedderRequired is returned when Embed is called without an embedder.
	ErrEmbedderRequired = errors.New("phrase embedder required")

	// ErrEmbeddingCount is returned when the embedder returns the wrong number of matrices.
	ErrEmbeddingCount = errors.New("embedding count mismatch")

	// ErrEmptyAttention is returned when an attention vector has no finite value.
	ErrEmptyAttention = errors.New("attention vector has no finite value")

	// ErrInvalidDefinition is returned for malformed pattern definition files.
	ErrInvalidDefinition = errors.New("invalid pattern definition")
)
