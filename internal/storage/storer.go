package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"golang.org/x/sync/errgroup"
)

// Storer persists a finished run. Implementations only read the result.
type Storer interface {
	Type() Type
	Store(ctx context.Context, res *runner.Result) error
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StorerError string

const ErrRunNotFound StorerError = "run not found"

func (e StorerError) Error() string {
	return string(e)
}

// StoreAll writes the run to every storer concurrently and returns the first error.
func StoreAll(ctx context.Context, res *runner.Result, storers ...Storer) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, s := range storers {
		g.Go(func() error {
			if err := s.Store(ctx, res); err != nil {
				return fmt.Errorf("store run in %s: %w", s.Type(), err)
			}
			slog.Info("Run stored", "storer", s.Type(), "run_id", res.RunID)
			return nil
		})
	}

	return g.Wait()
}
