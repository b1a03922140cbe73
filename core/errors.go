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


package core

import "errors"

// Shape and input validation errors
var (
	// ErrDimensionMismatch indicates two vectors (or vector sets) disagree on dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmptyMatrix indicates an embedding matrix with no rows.
	ErrEmptyMatrix = errors.New("embedding matrix is empty")

	// ErrEmptyVector indicates a zero-length embedding vector.
	ErrEmptyVector = errors.New("embedding vector is empty")

	// ErrInvalidPhrase indicates a Phrase failed validation.
	ErrInvalidPhrase = errors.New("invalid phrase")

	// ErrEmptyPhraseText indicates the Text field of a Phrase is blank.
	ErrEmptyPhraseText = errors.New("phrase text cannot be empty")
)
