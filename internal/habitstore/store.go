// Package habitstore owns the canonical habit collection.
//
// The whole collection lives under a single key. Every mutator loads it,
// changes one habit, recomputes derived fields and writes it all back.
// Mutators on one Store are serialized; two processes writing the same
// medium can still lose each other's updates.
package habitstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/brk3/habits/internal/codec"
	"github.com/brk3/habits/internal/daykey"
	"github.com/brk3/habits/internal/logger"
	"github.com/brk3/habits/internal/metrics"
	"github.com/brk3/habits/internal/stats"
	"github.com/brk3/habits/internal/storage"
	"github.com/brk3/habits/pkg/habit"
	"github.com/google/uuid"
)

// DefaultKey is the storage key holding the serialized collection.
const DefaultKey = "user_habits"

var ErrInvalidName = errors.New("habit name must not be empty")

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type Store struct {
	kv    storage.KV
	codec codec.Codec
	clock Clock
	newID func() string
	key   string

	mu sync.Mutex
}

type Option func(*Store)

func WithCodec(c codec.Codec) Option {
	return func(s *Store) { s.codec = c }
}

func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithIDGenerator(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		codec: codec.JSON{},
		clock: SystemClock{},
		newID: uuid.NewString,
		key:   DefaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Load reads the full collection, failing on any storage or decoding error.
func (s *Store) Load(ctx context.Context) ([]habit.Habit, error) {
	data, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	if !found {
		return []habit.Habit{}, nil
	}
	return codec.Decode(s.codec, data)
}

// GetAll is Load for display purposes: an unreadable store is logged and
// reported as empty.
func (s *Store) GetAll(ctx context.Context) []habit.Habit {
	habits, err := s.Load(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load habits, returning empty collection", "key", s.key, "error", err)
		metrics.RecordOp("get_all", metrics.ResultError)
		return []habit.Habit{}
	}
	metrics.RecordOp("get_all", metrics.ResultOK)
	return habits
}

// SaveAll replaces the stored collection.
func (s *Store) SaveAll(ctx context.Context, habits []habit.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, habits); err != nil {
		metrics.RecordOp("save_all", metrics.ResultError)
		return err
	}
	metrics.RecordOp("save_all", metrics.ResultOK)
	return nil
}

func (s *Store) save(ctx context.Context, habits []habit.Habit) error {
	data, err := codec.Encode(s.codec, habits)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	metrics.ObserveCollection(habits)
	return nil
}

// Get returns one habit by ID.
func (s *Store) Get(ctx context.Context, id string) (habit.Habit, bool, error) {
	habits, err := s.Load(ctx)
	if err != nil {
		return habit.Habit{}, false, err
	}
	i := indexOf(habits, id)
	if i < 0 {
		return habit.Habit{}, false, nil
	}
	return habits[i], true, nil
}

func (s *Store) Create(ctx context.Context, d habit.Draft) (habit.Habit, error) {
	if strings.TrimSpace(d.Name) == "" {
		return habit.Habit{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	habits, err := s.Load(ctx)
	if err != nil {
		metrics.RecordOp("create", metrics.ResultError)
		return habit.Habit{}, err
	}

	h := habit.Habit{
		ID:             s.newID(),
		Name:           d.Name,
		Description:    d.Description,
		Icon:           d.Icon,
		CreatedAt:      s.clock.Now(),
		CompletedDates: []time.Time{},
		Frequency:      d.Frequency,
		TargetType:     d.TargetType,
		TargetValue:    d.TargetValue,
	}
	habits = append(habits, h)

	if err := s.save(ctx, habits); err != nil {
		metrics.RecordOp("create", metrics.ResultError)
		return habit.Habit{}, err
	}
	metrics.RecordOp("create", metrics.ResultOK)
	logger.InfoContext(ctx, "Habit created", "habit_id", h.ID, "habit_name", h.Name)
	return h, nil
}

// Delete removes the habit. It reports false, and writes nothing, when id is
// unknown.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits, err := s.Load(ctx)
	if err != nil {
		metrics.RecordOp("delete", metrics.ResultError)
		return false, err
	}
	i := indexOf(habits, id)
	if i < 0 {
		metrics.RecordOp("delete", metrics.ResultNotFound)
		return false, nil
	}
	habits = slices.Delete(habits, i, i+1)

	if err := s.save(ctx, habits); err != nil {
		metrics.RecordOp("delete", metrics.ResultError)
		return false, err
	}
	metrics.RecordOp("delete", metrics.ResultOK)
	logger.InfoContext(ctx, "Habit deleted", "habit_id", id)
	return true, nil
}

// Update merges the non-nil fields of p into the habit.
func (s *Store) Update(ctx context.Context, id string, p habit.Patch) (habit.Habit, bool, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return habit.Habit{}, false, ErrInvalidName
	}
	return s.mutate(ctx, "update", id, func(h *habit.Habit) {
		if p.Name != nil {
			h.Name = *p.Name
		}
		if p.Description != nil {
			h.Description = *p.Description
		}
		if p.Icon != nil {
			h.Icon = *p.Icon
		}
	})
}

func (s *Store) SetArchived(ctx context.Context, id string, archived bool) (habit.Habit, bool, error) {
	return s.mutate(ctx, "set_archived", id, func(h *habit.Habit) {
		h.Archived = archived
	})
}

// RecordSkip marks day as skipped. A day already skipped is left alone.
func (s *Store) RecordSkip(ctx context.Context, id string, day time.Time) (habit.Habit, bool, error) {
	return s.mutate(ctx, "record_skip", id, func(h *habit.Habit) {
		if !daykey.IncludesDay(h.SkippedDates, day) {
			h.SkippedDates = append(h.SkippedDates, day)
		}
	})
}

// ClearAll wipes the storage medium.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Clear(ctx); err != nil {
		metrics.RecordOp("clear_all", metrics.ResultError)
		return fmt.Errorf("clear storage: %w", err)
	}
	metrics.RecordOp("clear_all", metrics.ResultOK)
	metrics.ObserveCollection(nil)
	logger.WarnContext(ctx, "All habit data cleared")
	return nil
}

// mutate is the read-modify-write cycle shared by single-habit mutators.
// Derived fields are refreshed after fn runs.
func (s *Store) mutate(ctx context.Context, op, id string, fn func(h *habit.Habit)) (habit.Habit, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits, err := s.Load(ctx)
	if err != nil {
		metrics.RecordOp(op, metrics.ResultError)
		return habit.Habit{}, false, err
	}
	i := indexOf(habits, id)
	if i < 0 {
		metrics.RecordOp(op, metrics.ResultNotFound)
		logger.DebugContext(ctx, "Habit not found", "op", op, "habit_id", id)
		return habit.Habit{}, false, nil
	}

	h := &habits[i]
	fn(h)
	s.refresh(h)

	if err := s.save(ctx, habits); err != nil {
		metrics.RecordOp(op, metrics.ResultError)
		return habit.Habit{}, false, err
	}
	metrics.RecordOp(op, metrics.ResultOK)
	logger.DebugContext(ctx, "Habit updated", "op", op, "habit_id", id, "streak", h.Streak)
	return *h, true, nil
}

// refresh recomputes the fields derived from the occurrence list.
func (s *Store) refresh(h *habit.Habit) {
	if h.CompletedDates == nil {
		h.CompletedDates = []time.Time{}
	}
	h.Streak = stats.CurrentStreak(h.CompletedDates, s.clock.Now())
	h.LastCompleted = stats.LastLogged(h.CompletedDates)
}

func indexOf(habits []habit.Habit, id string) int {
	return slices.IndexFunc(habits, func(h habit.Habit) bool { return h.ID == id })
}
