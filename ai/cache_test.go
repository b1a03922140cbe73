package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/landmark/core"
	"github.com/poiesic/landmark/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachingEmbedder_ServesHitsFromRepository(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	rec := &recordingEmbedder{}
	c, err := NewCachingEmbedder(rec, repo, "test-model")
	require.NoError(t, err)
	ctx := context.Background()

	first, err := c.EmbedTexts(ctx, []string{"alpha", "beta"})
	require.NoError(t, err)

	second, err := c.EmbedTexts(ctx, []string{"beta", "gamma", "alpha"})
	require.NoError(t, err)

	assert.Equal(t, first[1], second[0])
	assert.Equal(t, first[0], second[2])
	assert.Equal(t, []float32{5, 1, 1}, second[1])
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, rec.sent())

	n, err := repo.CountEmbeddings(ctx, "test-model")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	stored, err := repo.GetEmbedding(ctx, core.EmbeddingKey("test-model", "gamma"))
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 1, 1}, stored.Vector)
}

func TestCachingEmbedder_ModelsDoNotShareEntries(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	rec := &recordingEmbedder{}
	a, err := NewCachingEmbedder(rec, repo, "a")
	require.NoError(t, err)
	b, err := NewCachingEmbedder(rec, repo, "b")
	require.NoError(t, err)

	_, err = a.EmbedText(ctx, "same")
	require.NoError(t, err)
	_, err = b.EmbedText(ctx, "same")
	require.NoError(t, err)

	assert.Len(t, rec.batches, 2)
}

func TestCachingEmbedder_ErrorsAreNotCached(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	boom := errors.New("boom")
	rec := &recordingEmbedder{failFor: 1, err: boom}
	c, err := NewCachingEmbedder(rec, repo, "m")
	require.NoError(t, err)

	_, err = c.EmbedText(ctx, "x")
	assert.ErrorIs(t, err, boom)

	n, err := repo.CountEmbeddings(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, n)

	v, err := c.EmbedText(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1, 1}, v)
}

func TestCachingEmbedder_ClosedRepositoryFallsThrough(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	c, err := NewCachingEmbedder(&recordingEmbedder{}, repo, "m")
	require.NoError(t, err)

	v, err := c.EmbedText(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 1, 1}, v)
}

func TestNewCachingEmbedder_Validation(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewCachingEmbedder(nil, repo, "m")
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewCachingEmbedder(&recordingEmbedder{}, nil, "m")
	assert.Error(t, err)

	_, err = NewCachingEmbedder(&recordingEmbedder{}, repo, "")
	assert.Error(t, err)
}
