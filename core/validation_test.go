package core

import (
	"errors"
	"testing"
)

func TestValidateMatrix(t *testing.T) {
	tests := []struct {
		name    string
		matrix  [][]float32
		wantDim int
		wantErr error
	}{
		{
			name:    "valid matrix",
			matrix:  [][]float32{{1, 2, 3}, {4, 5, 6}},
			wantDim: 3,
		},
		{
			name:    "single row",
			matrix:  [][]float32{{1}},
			wantDim: 1,
		},
		{
			name:    "nil matrix",
			matrix:  nil,
			wantErr: ErrEmptyMatrix,
		},
		{
			name:    "empty first row",
			matrix:  [][]float32{{}},
			wantErr: ErrEmptyVector,
		},
		{
			name:    "ragged rows",
			matrix:  [][]float32{{1, 2}, {1, 2, 3}},
			wantErr: ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dim, err := ValidateMatrix(tt.matrix)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMatrix() error = %v, want nil", err)
				}
				if dim != tt.wantDim {
					t.Errorf("ValidateMatrix() dim = %d, want %d", dim, tt.wantDim)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMatrix() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSameDimension(t *testing.T) {
	a := [][]float32{{1, 0}, {0, 1}}
	b := [][]float32{{1, 1}}
	c := [][]float32{{1, 1, 1}}

	if err := ValidateSameDimension(a, b); err != nil {
		t.Errorf("ValidateSameDimension() error = %v, want nil", err)
	}

	if err := ValidateSameDimension(a, c); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("ValidateSameDimension() error = %v, want %v", err, ErrDimensionMismatch)
	}

	if err := ValidateSameDimension(nil, c); !errors.Is(err, ErrEmptyMatrix) {
		t.Errorf("ValidateSameDimension() error = %v, want %v", err, ErrEmptyMatrix)
	}
}

func TestValidatePhrase(t *testing.T) {
	tests := []struct {
		name    string
		phrase  Phrase
		wantErr bool
	}{
		{name: "plain text", phrase: NewPhrase("цена договора"), wantErr: false},
		{name: "context only", phrase: Phrase{Prefix: "a", Suffix: "b"}, wantErr: true},
		{name: "whitespace text", phrase: NewPhrase("  \t"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhrase(tt.phrase)
			if tt.wantErr && err == nil {
				t.Error("ValidatePhrase() error = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidatePhrase() error = %v, want nil", err)
			}
			if err != nil && !errors.Is(err, ErrEmptyPhraseText) {
				t.Errorf("ValidatePhrase() error = %v, want %v", err, ErrEmptyPhraseText)
			}
		})
	}
}
