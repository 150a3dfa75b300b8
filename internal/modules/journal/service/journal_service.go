package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"serene/internal/modules/journal/domain"
	journalout "serene/internal/modules/journal/port/out"
	apperrors "serene/internal/platform/errors"
	"serene/internal/platform/logging"
)

// JournalService keeps the entry list newest first. Adding always succeeds
// in memory; writing the note is best effort.
type JournalService struct {
	store  journalout.EntryStore
	logger hclog.Logger

	mu        sync.RWMutex
	entries   []domain.Entry
	listeners map[int]func([]domain.Entry)
	nextID    int
}

func NewJournalService(store journalout.EntryStore, logger hclog.Logger) *JournalService {
	return &JournalService{
		store:     store,
		logger:    logging.OrNull(logger).Named("journal"),
		entries:   []domain.Entry{},
		listeners: map[int]func([]domain.Entry){},
	}
}

func (s *JournalService) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	entries, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn("journal unavailable, starting empty", "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	sortNewestFirst(entries)
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *JournalService) AddEntry(ctx context.Context, entry domain.Entry) {
	s.mu.Lock()
	s.entries = append([]domain.Entry{entry}, s.entries...)
	s.mu.Unlock()

	if s.store != nil {
		path, err := s.store.Append(ctx, entry)
		if err != nil {
			s.logger.Error("persist journal entry", "id", entry.ID, "error", err)
		} else {
			s.logger.Debug("journal entry written", "path", path)
		}
	}
	s.notify()
}

func (s *JournalService) Entries() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Entry{}, s.entries...)
}

func (s *JournalService) Subscribe(fn func([]domain.Entry)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *JournalService) notify() {
	s.mu.RLock()
	listeners := make([]func([]domain.Entry), 0, len(s.listeners))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.listeners[i]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(s.Entries())
	}
}

func sortNewestFirst(entries []domain.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].Date.After(entries[j].Date)
	})
}
