package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/semsim/internal/bench/spec"
	"github.com/DjordjeVuckovic/semsim/internal/storage"
	"github.com/DjordjeVuckovic/semsim/internal/storage/es"
	"github.com/DjordjeVuckovic/semsim/internal/storage/pg"
)

// NewStorers connects every configured sink. The returned close func releases
// their connections and is safe to call when no sink is configured.
func NewStorers(ctx context.Context, cfg spec.SinksConfig) ([]storage.Storer, func(), error) {
	var storers []storage.Storer
	var closers []func()

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.Postgres != nil {
		pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.Postgres.Connection})
		if err != nil {
			return nil, closeAll, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		closers = append(closers, pool.Close)
		storers = append(storers, pg.NewRunStorer(pool))
		slog.Info("Postgres sink enabled")
	}

	if cfg.Elasticsearch != nil {
		s, err := es.NewStorer(ctx, es.ClientConfig{
			Addresses: cfg.Elasticsearch.Addresses,
			IndexName: cfg.Elasticsearch.Index,
			Username:  cfg.Elasticsearch.Username,
			Password:  cfg.Elasticsearch.Password,
		})
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to create Elasticsearch storer: %w", err)
		}
		storers = append(storers, s)
		slog.Info("Elasticsearch sink enabled", "index", cfg.Elasticsearch.Index)
	}

	return storers, closeAll, nil
}
