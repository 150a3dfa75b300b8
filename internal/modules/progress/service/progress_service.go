package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"serene/internal/modules/progress/domain"
	progressout "serene/internal/modules/progress/port/out"
	"serene/internal/platform/clock"
	apperrors "serene/internal/platform/errors"
	"serene/internal/platform/logging"
)

const (
	SnapshotKey = "progress.snapshot"
	StreakKey   = "progress.streak"
)

// ProgressService owns the published progress snapshot. Writers build a new
// snapshot on a clone, persist it and then swap it in, so readers observe
// either the previous or the next snapshot.
type ProgressService struct {
	store  progressout.KeyValueStore
	themes progressout.ThemeCatalog
	clock  clock.Clock
	logger hclog.Logger

	mu        sync.RWMutex
	snapshot  domain.Snapshot
	listeners map[int]func(domain.Snapshot)
	nextID    int
}

func NewProgressService(store progressout.KeyValueStore, themes progressout.ThemeCatalog, clk clock.Clock, logger hclog.Logger) *ProgressService {
	return &ProgressService{
		store:     store,
		themes:    themes,
		clock:     clk,
		logger:    logging.OrNull(logger).Named("progress"),
		snapshot:  domain.DefaultSnapshot(),
		listeners: map[int]func(domain.Snapshot){},
	}
}

// Load replaces the in-memory snapshot with the persisted one. A missing
// snapshot yields defaults; an unreadable one yields defaults and an
// ErrPersistenceUnavailable error the caller may log and ignore.
func (s *ProgressService) Load(ctx context.Context) error {
	next, err := s.read(ctx)
	if err != nil {
		s.logger.Warn("progress unavailable, starting from defaults", "error", err)
		next = domain.DefaultSnapshot()
		err = fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	s.publish(next)
	return err
}

func (s *ProgressService) read(ctx context.Context) (domain.Snapshot, error) {
	if s.store == nil {
		return domain.DefaultSnapshot(), nil
	}
	raw, found, err := s.store.Get(ctx, SnapshotKey)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	if !found {
		snapshot := domain.DefaultSnapshot()
		streak, err := s.readStreak(ctx)
		if err != nil {
			return domain.Snapshot{}, err
		}
		snapshot.StreakDays = streak
		return snapshot, nil
	}
	snapshot := domain.DefaultSnapshot()
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	snapshot.Normalize()
	return snapshot, nil
}

func (s *ProgressService) readStreak(ctx context.Context) (int, error) {
	raw, found, err := s.store.Get(ctx, StreakKey)
	if err != nil {
		return 0, fmt.Errorf("read streak: %w", err)
	}
	if !found {
		return 0, nil
	}
	streak, err := strconv.Atoi(string(raw))
	if err != nil || streak < 0 {
		s.logger.Warn("ignoring malformed streak", "value", string(raw))
		return 0, nil
	}
	return streak, nil
}

// Snapshot returns a copy of the published snapshot with the weekly buckets
// rolled forward to the clock's current week.
func (s *ProgressService) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.clock == nil {
		return s.snapshot.Clone()
	}
	return s.snapshot.AsOf(domain.DayOf(s.clock.Now()))
}

// Record applies one completed session. It never fails: persistence errors
// are logged and the in-memory snapshot still advances.
func (s *ProgressService) Record(ctx context.Context, c domain.Completion) (domain.Snapshot, []domain.Achievement) {
	themeIDs := s.themeIDs(ctx)

	s.mu.Lock()
	next, unlocked := s.snapshot.WithCompletion(c, themeIDs, s.clock.Now())
	if err := s.persist(ctx, next); err != nil {
		s.logger.Error("persist progress", "error", err)
	}
	s.snapshot = next
	listeners := s.listenersLocked()
	s.mu.Unlock()

	for _, a := range unlocked {
		s.logger.Info("achievement unlocked", "id", a.ID)
	}
	s.logger.Debug("session recorded", "day", c.Day.String(), "minutes", c.DurationMinutes, "streak", next.StreakDays)
	notify(listeners, next)
	return next.Clone(), unlocked
}

func (s *ProgressService) themeIDs(ctx context.Context) []string {
	if s.themes == nil {
		return nil
	}
	ids, err := s.themes.ThemeIDs(ctx)
	if err != nil {
		s.logger.Warn("list themes", "error", err)
		return nil
	}
	return ids
}

func (s *ProgressService) persist(ctx context.Context, snapshot domain.Snapshot) error {
	if s.store == nil {
		return nil
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.store.SetMany(ctx, map[string][]byte{
		SnapshotKey: raw,
		StreakKey:   []byte(strconv.Itoa(snapshot.StreakDays)),
	})
}

func (s *ProgressService) publish(next domain.Snapshot) {
	s.mu.Lock()
	s.snapshot = next
	listeners := s.listenersLocked()
	s.mu.Unlock()
	notify(listeners, next)
}

func (s *ProgressService) Subscribe(fn func(domain.Snapshot)) func() {
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

func (s *ProgressService) listenersLocked() []func(domain.Snapshot) {
	out := make([]func(domain.Snapshot), 0, len(s.listeners))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.listeners[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []func(domain.Snapshot), snapshot domain.Snapshot) {
	for _, fn := range listeners {
		fn(snapshot.Clone())
	}
}
