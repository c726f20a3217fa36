package repository

import (
	"context"
	"sync"

	"github.com/MauroGomes09/Unireserva/internal/model"
)

// MemorySnapshot keeps the durable copy in process. Intended for tests and
// for running without any storage.
type MemorySnapshot struct {
	mu      sync.Mutex
	data    []byte
	flushes int
}

// NewMemorySnapshot returns a snapshotter preloaded with table; a nil table
// makes Load report ErrSnapshotNotFound.
func NewMemorySnapshot(table model.RoomTable) *MemorySnapshot {
	s := &MemorySnapshot{}
	if table != nil {
		s.data, _ = EncodeSnapshot(table)
	}
	return s
}

func (s *MemorySnapshot) Load(ctx context.Context) (model.RoomTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, ErrSnapshotNotFound
	}
	return DecodeSnapshot(s.data)
}

func (s *MemorySnapshot) Flush(ctx context.Context, table model.RoomTable) error {
	data, err := EncodeSnapshot(table)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.flushes++
	return nil
}

// Flushes returns how many times Flush succeeded
func (s *MemorySnapshot) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

func (s *MemorySnapshot) Close() error { return nil }
