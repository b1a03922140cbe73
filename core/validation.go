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

import (
	"fmt"
	"strings"
)

// ValidateMatrix checks that an embedding matrix is non-empty and that every
// row has the same, non-zero dimensionality.
// Returns the shared dimension.
func ValidateMatrix(m [][]float32) (int, error) {
	if len(m) == 0 {
		return 0, ErrEmptyMatrix
	}

	dim := len(m[0])
	if dim == 0 {
		return 0, fmt.Errorf("%w: row 0", ErrEmptyVector)
	}

	for i, row := range m {
		if len(row) != dim {
			return 0, fmt.Errorf("%w: row %d has %d values, want %d", ErrDimensionMismatch, i, len(row), dim)
		}
	}
	return dim, nil
}

// ValidateSameDimension checks that both matrices are valid and share a dimension.
func ValidateSameDimension(u, v [][]float32) error {
	du, err := ValidateMatrix(u)
	if err != nil {
		return err
	}
	dv, err := ValidateMatrix(v)
	if err != nil {
		return err
	}
	if du != dv {
		return fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, du, dv)
	}
	return nil
}

// ValidatePhrase validates a Phrase.
//
// Validation rules:
//   - Text must contain something other than whitespace
//
// Prefix and Suffix are optional.
func ValidatePhrase(p Phrase) error {
	if strings.TrimSpace(p.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPhrase, ErrEmptyPhraseText)
	}
	return nil
}
