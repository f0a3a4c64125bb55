package nudge

import (
	"context"

	"github.com/brk3/habits/pkg/habit"
)

type Querier interface {
	Load(ctx context.Context) ([]habit.Habit, error)
}
