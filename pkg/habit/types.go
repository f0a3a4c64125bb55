package habit

import "time"

// Habit is one tracked behaviour and its occurrence log.
//
// CompletedDates is a multiset: order is irrelevant and several entries may
// share a day. Streak and LastCompleted are derived from it and are kept in
// sync by the store on every mutation.
type Habit struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	Icon           string      `json:"icon,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	Streak         int         `json:"streak"`
	LastCompleted  *time.Time  `json:"lastCompleted,omitempty"`
	CompletedDates []time.Time `json:"completedDates"`
	SkippedDates   []time.Time `json:"skippedDates,omitempty"`
	Archived       bool        `json:"archived"`

	// Cadence metadata, carried through unchanged.
	Frequency   string `json:"frequency,omitempty"`
	TargetType  string `json:"targetType,omitempty"`
	TargetValue int    `json:"targetValue,omitempty"`
}

// Draft holds the caller supplied fields of a new habit.
type Draft struct {
	Name        string
	Description string
	Icon        string
	Frequency   string
	TargetType  string
	TargetValue int
}

// Patch is a shallow edit; nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Icon        *string
}

type Summary struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Icon           string     `json:"icon,omitempty"`
	Archived       bool       `json:"archived"`
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	CompletionRate int        `json:"completion_rate_30d"`
	FirstLogged    *time.Time `json:"first_logged,omitempty"`
	LastCompleted  *time.Time `json:"last_completed,omitempty"`
	TotalDaysDone  int        `json:"total_days_done"`
	TotalLogs      int        `json:"total_logs"`
	TodayCount     int        `json:"today_count"`
	BestMonth      int        `json:"best_month"`
	ThisMonth      int        `json:"this_month"`
	Skips          int        `json:"skips"`
	History        []DayCount `json:"history,omitempty"`
}

// DayCount is the number of occurrences logged on one calendar day.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}
