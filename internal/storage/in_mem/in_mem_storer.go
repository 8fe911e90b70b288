package in_mem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/semsim/internal/bench/runner"
	"github.com/DjordjeVuckovic/semsim/internal/storage"
	"github.com/google/uuid"
)

// InMemStorer keeps the most recent runs in memory, dropping the oldest once
// capacity is reached.
type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]*runner.Result
	order       []uuid.UUID
	capacity    int
}

func NewInMemStorer(capacity int) *InMemStorer {
	return &InMemStorer{
		storage:  make(map[uuid.UUID]*runner.Result),
		capacity: capacity,
	}
}

func (s *InMemStorer) Type() storage.Type {
	return storage.InMem
}

func (s *InMemStorer) Store(ctx context.Context, res *runner.Result) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if _, ok := s.storage[res.RunID]; !ok {
		s.order = append(s.order, res.RunID)
	}
	s.storage[res.RunID] = res

	for s.capacity > 0 && len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.storage, oldest)
		slog.Debug("Evicted run from memory", "run_id", oldest)
	}
	return nil
}

func (s *InMemStorer) Get(ctx context.Context, id uuid.UUID) (*runner.Result, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	res, ok := s.storage[id]
	if !ok {
		return nil, storage.ErrRunNotFound
	}
	return res, nil
}

func (s *InMemStorer) Len() int {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	return len(s.storage)
}
