// Package daykey reduces instants to local calendar days.
//
// All functions use time.Local. Two instants are on the same day iff their
// keys are equal.
package daykey

import "time"

const layout = "2006-01-02"

// StartOfDay returns local midnight of t's local calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func IsSameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// Key returns the YYYY-MM-DD key of t's local calendar date.
func Key(t time.Time) string {
	return t.In(time.Local).Format(layout)
}

func KeySet(ts []time.Time) map[string]struct{} {
	set := make(map[string]struct{}, len(ts))
	for _, t := range ts {
		set[Key(t)] = struct{}{}
	}
	return set
}

// IncludesDay reports whether any of ts falls on day's calendar date.
func IncludesDay(ts []time.Time, day time.Time) bool {
	want := Key(day)
	for _, t := range ts {
		if Key(t) == want {
			return true
		}
	}
	return false
}

// AddDays moves n calendar days from t's local date and returns that day's
// midnight. Going through time.Date keeps it correct across DST changes.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, time.Local)
}

// Parse is the inverse of Key: it returns local midnight of the keyed day.
func Parse(key string) (time.Time, error) {
	return time.ParseInLocation(layout, key, time.Local)
}

// Next returns the key of the day after key. Malformed keys yield "".
func Next(key string) string {
	t, err := Parse(key)
	if err != nil {
		return ""
	}
	return Key(AddDays(t, 1))
}
