package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

type Storer struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewStorer(ctx context.Context, config ClientConfig) (*Storer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	storer := &Storer{
		client:    client,
		indexName: config.IndexName,
	}

	if err := storer.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return storer, nil
}

func (e *Storer) Type() storage.Type {
	return storage.ES
}

// Store bulk indexes one document per case result.
func (e *Storer) Store(ctx context.Context, res *runner.Result) error {
	docs := toDocuments(res, time.Now())
	if len(docs) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.indexName,
		Client:        e.client,
		NumWorkers:    2,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
		Refresh:       "wait_for",
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var counts bulkCounts
	for _, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			slog.Error("Failed to marshal case document", "id", doc.ID, "error", err)
			counts.failed.Add(1)
			continue
		}

		item := esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(body),
			OnSuccess:  counts.onSuccess,
			OnFailure:  counts.onFailure,
		}
		if err := bi.Add(ctx, item); err != nil {
			counts.failed.Add(1)
			slog.Error("Failed to queue case document", "id", doc.ID, "error", err)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("Case results indexed",
		"run_id", res.RunID,
		"indexed", counts.indexed.Load(),
		"failed", counts.failed.Load(),
		"index", e.indexName,
	)

	if n := counts.failed.Load(); n > 0 {
		return fmt.Errorf("failed to index %d of %d case results", n, len(docs))
	}
	return nil
}

type bulkCounts struct {
	indexed atomic.Int64
	failed  atomic.Int64
}

func (c *bulkCounts) onSuccess(context.Context, esutil.BulkIndexerItem, esutil.BulkIndexerResponseItem) {
	c.indexed.Add(1)
}

func (c *bulkCounts) onFailure(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
	c.failed.Add(1)
	if err != nil {
		slog.Error("Case document rejected", "id", item.DocumentID, "error", err)
		return
	}
	slog.Error("Case document rejected", "id", item.DocumentID, "status", res.Status, "type", res.Error.Type, "reason", res.Error.Reason)
}

// CountRun returns the number of indexed cases of a run.
func (e *Storer) CountRun(ctx context.Context, runID string) (int64, error) {
	res, err := e.client.Count().
		Index(e.indexName).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"run_id": {Value: runID},
			},
		}).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count run documents: %w", err)
	}
	return res.Count, nil
}

func (e *Storer) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		slog.Info("Index already exists", "index", e.indexName)
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":                 types.NewKeywordProperty(),
			"run_id":             types.NewKeywordProperty(),
			"started_at":         types.NewDateProperty(),
			"position":           types.NewIntegerNumberProperty(),
			"line":               types.NewIntegerNumberProperty(),
			"status":             types.NewKeywordProperty(),
			"winner_index":       types.NewIntegerNumberProperty(),
			"truth":              types.NewIntegerNumberProperty(),
			"winner_score":       types.NewDoubleNumberProperty(),
			"runner_up_score":    types.NewDoubleNumberProperty(),
			"margin":             types.NewDoubleNumberProperty(),
			"ambiguous":          types.NewBooleanProperty(),
			"correct":            types.NewBooleanProperty(),
			"candidate_failures": types.NewIntegerNumberProperty(),
			"target":             types.NewTextProperty(),
			"candidates":         types.NewTextProperty(),
			"scores":             types.NewObjectProperty(),
			"run_accuracy":       types.NewDoubleNumberProperty(),
			"indexed_at":         types.NewDateProperty(),
		},
	}

	createRes, err := e.client.Indices.Create(e.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", e.indexName)
	return nil
}
