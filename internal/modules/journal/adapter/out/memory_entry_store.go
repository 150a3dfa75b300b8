package out

import (
	"context"
	"sync"

	"serene/internal/modules/journal/domain"
	journalout "serene/internal/modules/journal/port/out"
)

type MemoryEntryStore struct {
	mu      sync.Mutex
	entries []domain.Entry
}

func NewMemoryEntryStore() *MemoryEntryStore {
	return &MemoryEntryStore{}
}

var _ journalout.EntryStore = (*MemoryEntryStore)(nil)

func (s *MemoryEntryStore) Append(_ context.Context, entry domain.Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return "memory://" + entry.ID, nil
}

func (s *MemoryEntryStore) List(_ context.Context) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Entry{}, s.entries...), nil
}
