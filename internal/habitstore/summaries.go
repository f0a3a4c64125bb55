package habitstore

import (
	"context"

	"github.com/brk3/habits/internal/stats"
	"github.com/brk3/habits/pkg/habit"
)

// Summaries returns a summary per habit, archived ones only when asked.
func (s *Store) Summaries(ctx context.Context, includeArchived bool) []habit.Summary {
	now := s.clock.Now()
	out := []habit.Summary{}
	for _, h := range s.GetAll(ctx) {
		if h.Archived && !includeArchived {
			continue
		}
		sum := stats.Summarize(h, now)
		sum.History = nil
		out = append(out, sum)
	}
	return out
}

// Summary returns the full summary, history included, of one habit.
func (s *Store) Summary(ctx context.Context, id string) (habit.Summary, bool, error) {
	h, ok, err := s.Get(ctx, id)
	if err != nil || !ok {
		return habit.Summary{}, ok, err
	}
	return stats.Summarize(h, s.clock.Now()), true, nil
}
