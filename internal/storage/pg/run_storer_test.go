package pg

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/semsim/internal/storage"
	pkgtesting "github.com/DjordjeVuckovic/semsim/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T) *ConnectionPool {
	t.Helper()
	ctx := context.Background()
	connStr := pkgtesting.StartPostgres(ctx, t)

	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: connStr, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestRunStorer_Store(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	s := NewRunStorer(pool)

	res := pkgtesting.SampleRun()
	require.NoError(t, s.Store(ctx, res))

	sum, err := s.GetSummary(ctx, res.RunID)
	require.NoError(t, err)
	assert.Equal(t, res.Summary, sum)

	n, err := s.CountCaseResults(ctx, res.RunID)
	require.NoError(t, err)
	assert.Equal(t, len(res.Results), n)

	assert.Error(t, s.Store(ctx, res), "duplicate run id must fail")
}

func TestRunStorer_GetSummary_NotFound(t *testing.T) {
	pool := newTestPool(t)

	_, err := NewRunStorer(pool).GetSummary(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storage.ErrRunNotFound)
}

func TestHealthChecker(t *testing.T) {
	assert.False(t, NewHealthChecker(nil).Healthy(context.Background()))

	pool := newTestPool(t)
	assert.True(t, NewHealthChecker(pool).Healthy(context.Background()))
}
