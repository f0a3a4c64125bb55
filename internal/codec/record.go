// Package codec defines the persisted shape of the habit collection and the
// encodings it can be stored in.
package codec

import (
	"fmt"
	"time"

	"github.com/brk3/habits/pkg/habit"
)

// Record is one habit as persisted. Instants are RFC3339Nano strings so the
// stored value is readable and round-trips exactly.
type Record struct {
	ID             string   `json:"id" msgpack:"id"`
	Name           string   `json:"name" msgpack:"name"`
	Description    string   `json:"description,omitempty" msgpack:"description,omitempty"`
	Icon           string   `json:"icon,omitempty" msgpack:"icon,omitempty"`
	CreatedAt      string   `json:"createdAt" msgpack:"createdAt"`
	Streak         int      `json:"streak" msgpack:"streak"`
	LastCompleted  string   `json:"lastCompleted,omitempty" msgpack:"lastCompleted,omitempty"`
	CompletedDates []string `json:"completedDates" msgpack:"completedDates"`
	SkippedDates   []string `json:"skippedDates,omitempty" msgpack:"skippedDates,omitempty"`
	Archived       bool     `json:"archived" msgpack:"archived"`
	Frequency      string   `json:"frequency,omitempty" msgpack:"frequency,omitempty"`
	TargetType     string   `json:"targetType,omitempty" msgpack:"targetType,omitempty"`
	TargetValue    int      `json:"targetValue,omitempty" msgpack:"targetValue,omitempty"`
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func formatTimes(ts []time.Time) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, formatTime(t))
	}
	return out
}

func parseTimes(field string, ss []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(ss))
	for i, s := range ss {
		t, err := parseTime(s)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// FromHabit converts h to its persisted form.
func FromHabit(h habit.Habit) Record {
	r := Record{
		ID:             h.ID,
		Name:           h.Name,
		Description:    h.Description,
		Icon:           h.Icon,
		CreatedAt:      formatTime(h.CreatedAt),
		Streak:         h.Streak,
		CompletedDates: formatTimes(h.CompletedDates),
		Archived:       h.Archived,
		Frequency:      h.Frequency,
		TargetType:     h.TargetType,
		TargetValue:    h.TargetValue,
	}
	if h.LastCompleted != nil {
		r.LastCompleted = formatTime(*h.LastCompleted)
	}
	if len(h.SkippedDates) > 0 {
		r.SkippedDates = formatTimes(h.SkippedDates)
	}
	return r
}

// ToHabit rehydrates r. Any unparseable instant is an error.
func ToHabit(r Record) (habit.Habit, error) {
	h := habit.Habit{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Icon:        r.Icon,
		Streak:      r.Streak,
		Archived:    r.Archived,
		Frequency:   r.Frequency,
		TargetType:  r.TargetType,
		TargetValue: r.TargetValue,
	}

	var err error
	if h.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return habit.Habit{}, fmt.Errorf("habit %s: createdAt: %w", r.ID, err)
	}
	if r.LastCompleted != "" {
		t, err := parseTime(r.LastCompleted)
		if err != nil {
			return habit.Habit{}, fmt.Errorf("habit %s: lastCompleted: %w", r.ID, err)
		}
		h.LastCompleted = &t
	}
	if h.CompletedDates, err = parseTimes("completedDates", r.CompletedDates); err != nil {
		return habit.Habit{}, fmt.Errorf("habit %s: %w", r.ID, err)
	}
	if len(r.SkippedDates) > 0 {
		if h.SkippedDates, err = parseTimes("skippedDates", r.SkippedDates); err != nil {
			return habit.Habit{}, fmt.Errorf("habit %s: %w", r.ID, err)
		}
	}
	return h, nil
}
