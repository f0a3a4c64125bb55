// Package stats derives streaks and completion figures from an occurrence
// list. Everything here works on calendar-day membership, so several logs on
// the same day never count twice.
package stats

import (
	"math"
	"slices"
	"time"

	"github.com/brk3/habits/internal/daykey"
)

const rateWindowDays = 30

// CurrentStreak counts consecutive logged days ending at the anchor day.
// The anchor is today if logged, otherwise yesterday if logged; a habit with
// neither has no current streak.
func CurrentStreak(occurrences []time.Time, now time.Time) int {
	if len(occurrences) == 0 {
		return 0
	}
	days := daykey.KeySet(occurrences)

	anchor := daykey.StartOfDay(now)
	if _, ok := days[daykey.Key(anchor)]; !ok {
		anchor = daykey.AddDays(anchor, -1)
		if _, ok := days[daykey.Key(anchor)]; !ok {
			return 0
		}
	}

	streak := 0
	for day := anchor; ; day = daykey.AddDays(day, -1) {
		if _, ok := days[daykey.Key(day)]; !ok {
			break
		}
		streak++
	}
	return streak
}

// BestStreak returns the longest run of consecutive logged days.
func BestStreak(occurrences []time.Time) int {
	keys := sortedKeys(occurrences)
	if len(keys) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(keys); i++ {
		if keys[i] == daykey.Next(keys[i-1]) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// CompletionRate30d is the percentage (0-100) of the last 30 days, today
// included, with at least one occurrence.
func CompletionRate30d(occurrences []time.Time, now time.Time) int {
	if len(occurrences) == 0 {
		return 0
	}
	days := daykey.KeySet(occurrences)

	hits := 0
	for i := 0; i < rateWindowDays; i++ {
		if _, ok := days[daykey.Key(daykey.AddDays(now, -i))]; ok {
			hits++
		}
	}
	return int(math.Round(float64(hits) / rateWindowDays * 100))
}

// sortedKeys returns the unique day keys in chronological order.
// YYYY-MM-DD sorts lexicographically in date order.
func sortedKeys(occurrences []time.Time) []string {
	set := daykey.KeySet(occurrences)
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
