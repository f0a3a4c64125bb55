package stats

import (
	"time"

	"github.com/brk3/habits/internal/daykey"
	"github.com/brk3/habits/pkg/habit"
)

// HistoryDays is how many days Summarize includes in Summary.History.
const HistoryDays = 14

// CountsByDay maps each day key to the number of occurrences on that day.
func CountsByDay(occurrences []time.Time) map[string]int {
	counts := make(map[string]int, len(occurrences))
	for _, t := range occurrences {
		counts[daykey.Key(t)]++
	}
	return counts
}

// History returns the last n days, newest first, with their counts.
func History(occurrences []time.Time, now time.Time, n int) []habit.DayCount {
	if n <= 0 {
		return nil
	}
	counts := CountsByDay(occurrences)
	out := make([]habit.DayCount, 0, n)
	for i := 0; i < n; i++ {
		key := daykey.Key(daykey.AddDays(now, -i))
		out = append(out, habit.DayCount{Day: key, Count: counts[key]})
	}
	return out
}

func TotalDays(occurrences []time.Time) int {
	return len(daykey.KeySet(occurrences))
}

// FirstLogged returns the earliest occurrence, or nil for an empty log.
func FirstLogged(occurrences []time.Time) *time.Time {
	return extreme(occurrences, func(a, b time.Time) bool { return a.Before(b) })
}

// LastLogged returns the latest occurrence, or nil for an empty log.
func LastLogged(occurrences []time.Time) *time.Time {
	return extreme(occurrences, func(a, b time.Time) bool { return a.After(b) })
}

func extreme(occurrences []time.Time, better func(a, b time.Time) bool) *time.Time {
	if len(occurrences) == 0 {
		return nil
	}
	best := occurrences[0]
	for _, t := range occurrences[1:] {
		if better(t, best) {
			best = t
		}
	}
	return &best
}

// ThisMonth counts distinct logged days in now's calendar month.
func ThisMonth(occurrences []time.Time, now time.Time) int {
	return daysPerMonth(occurrences)[monthKey(now)]
}

// BestMonth is the highest count of distinct logged days in any month.
func BestMonth(occurrences []time.Time) int {
	best := 0
	for _, n := range daysPerMonth(occurrences) {
		best = max(best, n)
	}
	return best
}

func daysPerMonth(occurrences []time.Time) map[string]int {
	out := map[string]int{}
	for key := range daykey.KeySet(occurrences) {
		out[key[:7]]++
	}
	return out
}

func monthKey(t time.Time) string {
	return daykey.Key(t)[:7]
}

// Summarize computes every figure for h as of now.
func Summarize(h habit.Habit, now time.Time) habit.Summary {
	occ := h.CompletedDates
	return habit.Summary{
		ID:             h.ID,
		Name:           h.Name,
		Icon:           h.Icon,
		Archived:       h.Archived,
		CurrentStreak:  CurrentStreak(occ, now),
		LongestStreak:  BestStreak(occ),
		CompletionRate: CompletionRate30d(occ, now),
		FirstLogged:    FirstLogged(occ),
		LastCompleted:  LastLogged(occ),
		TotalDaysDone:  TotalDays(occ),
		TotalLogs:      len(occ),
		TodayCount:     CountsByDay(occ)[daykey.Key(now)],
		BestMonth:      BestMonth(occ),
		ThisMonth:      ThisMonth(occ, now),
		Skips:          len(daykey.KeySet(h.SkippedDates)),
		History:        History(occ, now, HistoryDays),
	}
}
