package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/landmark/core"
	"github.com/poiesic/landmark/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) storage.EmbeddingRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func embedding(model, text string, v ...float32) *core.Embedding {
	return &core.Embedding{Id: core.EmbeddingKey(model, text), Model: model, Vector: v}
}

func TestPutAndGetEmbedding(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	e := embedding("m", "hello", 1, 2, 3)
	require.NoError(t, repo.PutEmbeddings(ctx, e))
	assert.False(t, e.InsertedAt.IsZero())

	got, err := repo.GetEmbedding(ctx, e.Id)
	require.NoError(t, err)
	assert.Equal(t, e.Vector, got.Vector)
	assert.Equal(t, "m", got.Model)
	assert.WithinDuration(t, e.InsertedAt, got.InsertedAt, time.Millisecond)
}

func TestGetEmbedding_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetEmbedding(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPutEmbeddings_Replaces(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.PutEmbeddings(ctx, embedding("m", "x", 1)))
	require.NoError(t, repo.PutEmbeddings(ctx, embedding("m", "x", 2)))

	got, err := repo.GetEmbedding(ctx, core.EmbeddingKey("m", "x"))
	require.NoError(t, err)
	assert.Equal(t, []float32{2}, got.Vector)

	n, err := repo.CountEmbeddings(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetEmbeddings_SkipsMissing(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	a := embedding("m", "a", 1)
	b := embedding("m", "b", 2)
	require.NoError(t, repo.PutEmbeddings(ctx, a, b))

	got, err := repo.GetEmbeddings(ctx, b.Id, core.ID(99), a.Id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.Id, got[0].Id)
	assert.Equal(t, a.Id, got[1].Id)
}

func TestDeleteAndClearEmbeddings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	var all []*core.Embedding
	for i := 0; i < 10; i++ {
		all = append(all, embedding("m", fmt.Sprintf("t%d", i), float32(i)))
	}
	require.NoError(t, repo.PutEmbeddings(ctx, all...))

	require.NoError(t, repo.DeleteEmbeddings(ctx, all[0].Id, all[1].Id, core.ID(424242)))
	n, err := repo.CountEmbeddings(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	require.NoError(t, repo.ClearEmbeddings(ctx))
	n, err = repo.CountEmbeddings(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCountEmbeddings_ByModel(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.PutEmbeddings(ctx,
		embedding("alpha", "one", 1),
		embedding("alpha", "two", 2),
		embedding("beta", "one", 3),
	))

	tests := []struct {
		model string
		want  int
	}{
		{"", 3},
		{"alpha", 2},
		{"beta", 1},
		{"gamma", 0},
	}
	for _, tt := range tests {
		t.Run("model="+tt.model, func(t *testing.T) {
			n, err := repo.CountEmbeddings(ctx, tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestPutEmbeddings_Empty(t *testing.T) {
	repo := newTestRepository(t)
	assert.NoError(t, repo.PutEmbeddings(context.Background()))
}
