package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brk3/habits/pkg/habit"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrUnknownCodec = errors.New("unknown codec")

// Codec encodes the whole record array into a single stored value.
type Codec interface {
	Name() string
	Marshal(records []Record) ([]byte, error)
	Unmarshal(data []byte) ([]Record, error)
}

type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Marshal(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return json.Marshal(records)
}

func (JSON) Unmarshal(data []byte) ([]Record, error) {
	var out []Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Msgpack is a compact binary alternative to JSON for the stored value.
type Msgpack struct{}

func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Marshal(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return msgpack.Marshal(records)
}

func (Msgpack) Unmarshal(data []byte) ([]Record, error) {
	var out []Record
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByName returns the codec registered under name; "" selects JSON.
func ByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSON{}, nil
	case "msgpack":
		return Msgpack{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// Encode serializes habits with c.
func Encode(c Codec, habits []habit.Habit) ([]byte, error) {
	records := make([]Record, 0, len(habits))
	for _, h := range habits {
		records = append(records, FromHabit(h))
	}
	data, err := c.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.Name(), err)
	}
	return data, nil
}

// Decode parses a stored value. An empty value is an empty collection.
func Decode(c Codec, data []byte) ([]habit.Habit, error) {
	if len(data) == 0 {
		return []habit.Habit{}, nil
	}
	records, err := c.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	out := make([]habit.Habit, 0, len(records))
	for _, r := range records {
		h, err := ToHabit(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
		}
		out = append(out, h)
	}
	return out, nil
}
