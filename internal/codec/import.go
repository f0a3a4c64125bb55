package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brk3/habits/internal/daykey"
	"github.com/brk3/habits/pkg/habit"
)

var ErrMalformedImport = errors.New("malformed import: expected a JSON array of habit objects")

// PlaceholderName replaces a missing or blank name on import.
const PlaceholderName = "Untitled habit"

// ImportRecord is either Valid (taken as is) or Coerced (one or more fields
// were replaced with safe defaults).
type ImportRecord interface {
	Record() Record
	importRecord()
}

type Valid struct {
	R Record
}

func (v Valid) Record() Record { return v.R }
func (Valid) importRecord() {}

type Coerced struct {
	R Record

	// Fields lists the JSON field names that were defaulted or repaired.
	Fields []string
}

func (c Coerced) Record() Record { return c.R }
func (Coerced) importRecord() {}

// ParseImport classifies every element of a user supplied export file.
// Anything other than an array of objects is rejected as a whole.
func ParseImport(raw []byte, newID func() string, now time.Time) ([]ImportRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrMalformedImport
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	out := make([]ImportRecord, 0, len(elems))
	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformedImport, i)
		}
		if r, ok := strictRecord(elem); ok {
			out = append(out, Valid{R: r})
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(elem, &m); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformedImport, i, err)
		}
		c := coerce(m, newID, now)
		if len(c.Fields) == 0 {
			// only representation changed, e.g. epoch or day-key dates
			out = append(out, Valid{R: c.R})
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func strictRecord(elem []byte) (Record, bool) {
	var r Record
	if err := json.Unmarshal(elem, &r); err != nil {
		return Record{}, false
	}
	if r.ID == "" || strings.TrimSpace(r.Name) == "" {
		return Record{}, false
	}
	if _, err := ToHabit(r); err != nil {
		return Record{}, false
	}
	return r, true
}

func coerce(m map[string]any, newID func() string, now time.Time) Coerced {
	c := Coerced{}
	mark := func(field string) { c.Fields = append(c.Fields, field) }

	if s, ok := m["id"].(string); ok && s != "" {
		c.R.ID = s
	} else {
		c.R.ID = newID()
		mark("id")
	}

	if s, ok := m["name"].(string); ok && strings.TrimSpace(s) != "" {
		c.R.Name = s
	} else {
		c.R.Name = PlaceholderName
		mark("name")
	}

	c.R.Description = optString(m, "description", mark)
	c.R.Icon = optString(m, "icon", mark)
	c.R.Frequency = optString(m, "frequency", mark)
	c.R.TargetType = optString(m, "targetType", mark)

	if v, present := m["targetValue"]; present && v != nil {
		if f, ok := v.(float64); ok && f == math.Trunc(f) {
			c.R.TargetValue = int(f)
		} else {
			mark("targetValue")
		}
	}

	if v, present := m["archived"]; present && v != nil {
		if b, ok := v.(bool); ok {
			c.R.Archived = b
		} else {
			mark("archived")
		}
	}

	if t, ok := instant(m["createdAt"]); ok {
		c.R.CreatedAt = formatTime(t)
	} else {
		c.R.CreatedAt = formatTime(now)
		mark("createdAt")
	}

	c.R.CompletedDates = instants(m, "completedDates", mark)
	if skipped := instants(m, "skippedDates", mark); len(skipped) > 0 {
		c.R.SkippedDates = skipped
	}
	return c
}

func optString(m map[string]any, field string, mark func(string)) string {
	v, present := m[field]
	if !present || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		mark(field)
		return ""
	}
	return s
}

// instants keeps the parseable elements of a date list. A missing list is
// fine; a non-list or any dropped element marks the field.
func instants(m map[string]any, field string, mark func(string)) []string {
	out := []string{}
	v, present := m[field]
	if !present || v == nil {
		return out
	}
	list, ok := v.([]any)
	if !ok {
		mark(field)
		return out
	}
	dropped := false
	for _, e := range list {
		if t, ok := instant(e); ok {
			out = append(out, formatTime(t))
		} else {
			dropped = true
		}
	}
	if dropped {
		mark(field)
	}
	return out
}

// instant accepts an RFC3339 string, a YYYY-MM-DD day or epoch milliseconds.
func instant(v any) (time.Time, bool) {
	switch x := v.(type) {
	case string:
		if t, err := parseTime(x); err == nil {
			return t, true
		}
		if t, err := daykey.Parse(x); err == nil {
			return t, true
		}
	case float64:
		if math.IsNaN(x) || x < minMillis || x > maxMillis {
			break
		}
		if t := time.UnixMilli(int64(x)); t.Year() >= 0 && t.Year() <= 9999 {
			return t, true
		}
	}
	return time.Time{}, false
}

// Epoch milliseconds outside years 0000-9999 cannot be stored as RFC 3339.
var (
	minMillis = float64(time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli())
	maxMillis = float64(time.Date(9999, time.December, 31, 23, 59, 59, 999e6, time.UTC).UnixMilli())
)

// Habits converts classified records into habits, replacing any ID already
// used by an earlier record.
func Habits(records []ImportRecord, newID func() string) ([]habit.Habit, error) {
	seen := make(map[string]struct{}, len(records))
	out := make([]habit.Habit, 0, len(records))
	for _, rec := range records {
		r := rec.Record()
		if _, dup := seen[r.ID]; dup {
			r.ID = newID()
		}
		seen[r.ID] = struct{}{}

		h, err := ToHabit(r)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}
