// Package mock provides test double implementations of the ai interfaces.
//
// This package contains mock implementations of ai.Embedder and ai.Provider
// for use in unit tests. The mocks run without an embedding service and
// produce deterministic vectors.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	rows, err := provider.TokenEmbedder().EmbedTokens(ctx, tokens)
//
//	// Custom behavior injection
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("service down")
//	}
//
//	// Check call counts
//	count := embedder.CallCount()
//
// # Default Behavior
//
// MockEmbedder returns a bag-of-words vector: every word maps to a fixed
// pseudo-random direction and a text embeds to the normalized sum of its
// words. Texts sharing words are therefore close in cosine distance, which
// is enough for pattern matching tests to find the phrases they plant.
package mock
