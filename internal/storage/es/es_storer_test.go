package es

import (
	"context"
	"testing"
	"time"

	pkgtesting "github.com/DjordjeVuckovic/semsim/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDocuments(t *testing.T) {
	res := pkgtesting.SampleRun()
	now := time.Now()

	docs := toDocuments(res, now)
	require.Len(t, docs, len(res.Results))

	first := docs[0]
	assert.Equal(t, res.RunID.String()+"-0", first.ID)
	assert.Equal(t, res.RunID.String(), first.RunID)
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, "t0", first.Target)
	assert.Equal(t, []string{"a", "b"}, first.Candidates)
	assert.True(t, first.Correct)
	assert.Equal(t, res.Summary.Accuracy, first.RunAccuracy)
	assert.Equal(t, now, first.IndexedAt)

	assert.Equal(t, "degenerate", docs[2].Status)
}

func TestNewStorer_NoAddresses(t *testing.T) {
	_, err := NewStorer(context.Background(), ClientConfig{IndexName: "x"})
	assert.Error(t, err)
}

func TestStorer_Store(t *testing.T) {
	ctx := context.Background()
	address := pkgtesting.StartElasticsearch(ctx, t)

	s, err := NewStorer(ctx, ClientConfig{
		Addresses: []string{address},
		IndexName: "semsim_case_results_test",
	})
	require.NoError(t, err)
	require.NoError(t, s.EnsureIndex(ctx), "second call sees the existing index")

	res := pkgtesting.SampleRun()
	require.NoError(t, s.Store(ctx, res))

	n, err := s.CountRun(ctx, res.RunID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(len(res.Results)), n)
}
