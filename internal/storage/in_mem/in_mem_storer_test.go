package in_mem

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemStorer(t *testing.T) {
	ctx := context.Background()
	s := NewInMemStorer(2)

	first := &runner.Result{RunID: uuid.New()}
	second := &runner.Result{RunID: uuid.New()}
	third := &runner.Result{RunID: uuid.New()}

	require.NoError(t, s.Store(ctx, first))
	require.NoError(t, s.Store(ctx, second))

	got, err := s.Get(ctx, first.RunID)
	require.NoError(t, err)
	assert.Same(t, first, got)

	require.NoError(t, s.Store(ctx, third))
	assert.Equal(t, 2, s.Len())

	_, err = s.Get(ctx, first.RunID)
	assert.ErrorIs(t, err, storage.ErrRunNotFound)

	require.NoError(t, s.Store(ctx, second))
	assert.Equal(t, 2, s.Len())
}

func TestStoreAll(t *testing.T) {
	ctx := context.Background()
	a, b := NewInMemStorer(0), NewInMemStorer(0)
	res := &runner.Result{RunID: uuid.New()}

	require.NoError(t, storage.StoreAll(ctx, res, a, b))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())

	require.NoError(t, storage.StoreAll(ctx, res))
}

type failingStorer struct{}

func (failingStorer) Type() storage.Type { return storage.PG }

func (failingStorer) Store(ctx context.Context, res *runner.Result) error {
	return assert.AnError
}

func TestStoreAll_PropagatesError(t *testing.T) {
	err := storage.StoreAll(context.Background(), &runner.Result{RunID: uuid.New()}, NewInMemStorer(0), failingStorer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "store run in pg")
}
