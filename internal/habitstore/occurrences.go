package habitstore

import (
	"context"
	"slices"
	"time"

	"github.com/brk3/habits/internal/daykey"
	"github.com/brk3/habits/pkg/habit"
)

// LogOccurrence appends t unconditionally; count-based habits may be logged
// several times a day.
func (s *Store) LogOccurrence(ctx context.Context, id string, t time.Time) (habit.Habit, bool, error) {
	return s.mutate(ctx, "log_occurrence", id, func(h *habit.Habit) {
		h.CompletedDates = append(h.CompletedDates, t)
	})
}

// RemoveOccurrence drops one occurrence on t's calendar day. With several
// on that day the most recently appended one goes first.
func (s *Store) RemoveOccurrence(ctx context.Context, id string, t time.Time) (habit.Habit, bool, error) {
	return s.mutate(ctx, "remove_occurrence", id, func(h *habit.Habit) {
		for i := len(h.CompletedDates) - 1; i >= 0; i-- {
			if daykey.IsSameDay(h.CompletedDates[i], t) {
				h.CompletedDates = slices.Delete(h.CompletedDates, i, i+1)
				return
			}
		}
	})
}

// ToggleCompletion is the checkbox form: remove the first occurrence on t's
// day if there is one, otherwise log t.
func (s *Store) ToggleCompletion(ctx context.Context, id string, t time.Time) (habit.Habit, bool, error) {
	return s.mutate(ctx, "toggle_completion", id, func(h *habit.Habit) {
		i := slices.IndexFunc(h.CompletedDates, func(d time.Time) bool {
			return daykey.IsSameDay(d, t)
		})
		if i >= 0 {
			h.CompletedDates = slices.Delete(h.CompletedDates, i, i+1)
			return
		}
		h.CompletedDates = append(h.CompletedDates, t)
	})
}
