package nudge

import (
	"context"
	"slices"
	"time"

	"github.com/brk3/habits/internal/daykey"
	"github.com/brk3/habits/internal/logger"
	"github.com/brk3/habits/internal/stats"
	"github.com/brk3/habits/pkg/habit"
)

type Notifier interface {
	SendNudge(habits []string, hoursTillExpiry int) error
}

// ExpiresAt returns the moment h's current streak ends if nothing more is
// logged: midnight closing the day after the last logged day. ok is false
// when there is no streak to lose.
func ExpiresAt(h habit.Habit, now time.Time) (time.Time, bool) {
	if stats.CurrentStreak(h.CompletedDates, now) == 0 {
		return time.Time{}, false
	}
	last := stats.LastLogged(h.CompletedDates)
	return daykey.AddDays(*last, 2), true
}

// GetHabitsExpiringIn lists the names of active habits whose streak ends
// within window of now.
func GetHabitsExpiringIn(ctx context.Context, q Querier, window time.Duration, now time.Time) ([]string, error) {
	habits, err := q.Load(ctx)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, h := range habits {
		if h.Archived {
			continue
		}
		expiry, ok := ExpiresAt(h, now)
		if !ok {
			continue
		}
		if expiry.Sub(now) <= window {
			out = append(out, h.Name)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Nudge sends one notification covering every streak expiring within
// threshold. It returns the habits it notified about.
func Nudge(ctx context.Context, q Querier, n Notifier, threshold time.Duration, now time.Time) ([]string, error) {
	expiring, err := GetHabitsExpiringIn(ctx, q, threshold, now)
	if err != nil {
		return nil, err
	}
	if len(expiring) == 0 {
		logger.InfoContext(ctx, "No streaks expiring", "threshold", threshold)
		return nil, nil
	}

	hours := int(threshold.Hours())
	if err := n.SendNudge(expiring, hours); err != nil {
		logger.ErrorContext(ctx, "Failed to send nudge", "habits", expiring, "error", err)
		return nil, err
	}
	logger.InfoContext(ctx, "Nudge sent", "habits", expiring, "hours", hours)
	return expiring, nil
}
