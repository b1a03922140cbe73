package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "cyrillic content",
			content:  "статья 4. предмет договора",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestEmbeddingKey(t *testing.T) {
	if EmbeddingKey("m1", "text") == EmbeddingKey("m2", "text") {
		t.Errorf("EmbeddingKey() ignores the model")
	}
	if EmbeddingKey("m", "ab") == EmbeddingKey("ma", "b") {
		t.Errorf("EmbeddingKey() does not separate model from text")
	}
	if EmbeddingKey("m", "text") != EmbeddingKey("m", "text") {
		t.Errorf("EmbeddingKey() is not deterministic")
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		name    string
		span    Span
		wantLen int
		inside  []int
		outside []int
	}{
		{
			name:    "regular span",
			span:    Span{Start: 2, End: 5},
			wantLen: 3,
			inside:  []int{2, 3, 4},
			outside: []int{1, 5},
		},
		{
			name:    "empty span",
			span:    Span{Start: 3, End: 3},
			wantLen: 0,
			outside: []int{2, 3},
		},
		{
			name:    "inverted span",
			span:    Span{Start: 4, End: 1},
			wantLen: 0,
			outside: []int{1, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Len(); got != tt.wantLen {
				t.Errorf("Span.Len() = %d, want %d", got, tt.wantLen)
			}
			for _, i := range tt.inside {
				if !tt.span.Contains(i) {
					t.Errorf("Span.Contains(%d) = false, want true", i)
				}
			}
			for _, i := range tt.outside {
				if tt.span.Contains(i) {
					t.Errorf("Span.Contains(%d) = true, want false", i)
				}
			}
		})
	}
}

func TestPhrase_String(t *testing.T) {
	tests := []struct {
		name   string
		phrase Phrase
		want   string
	}{
		{
			name:   "text only",
			phrase: NewPhrase("предмет договора"),
			want:   "предмет договора",
		},
		{
			name:   "with context",
			phrase: Phrase{Prefix: "1.", Text: "предмет договора", Suffix: "исполнитель"},
			want:   "[1.] предмет договора [исполнитель]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.phrase.String(); got != tt.want {
				t.Errorf("Phrase.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
