package habitstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brk3/habits/internal/codec"
	"github.com/brk3/habits/internal/logger"
	"github.com/brk3/habits/internal/metrics"
)

type ImportReport struct {
	Imported int `json:"imported"`
	Coerced  int `json:"coerced"`
}

// Import replaces the whole collection with the habits in raw, a JSON export.
// Nothing is written unless raw is an array of objects; bad fields inside an
// object are defaulted rather than failing the import.
func (s *Store) Import(ctx context.Context, raw []byte) (ImportReport, error) {
	now := s.clock.Now()
	records, err := codec.ParseImport(raw, s.newID, now)
	if err != nil {
		metrics.RecordOp("import", metrics.ResultError)
		return ImportReport{}, err
	}

	report := ImportReport{Imported: len(records)}
	for i, rec := range records {
		if c, ok := rec.(codec.Coerced); ok {
			report.Coerced++
			logger.WarnContext(ctx, "Coerced fields in imported habit", "index", i, "habit_id", c.R.ID, "fields", c.Fields)
		}
	}

	habits, err := codec.Habits(records, s.newID)
	if err != nil {
		metrics.RecordOp("import", metrics.ResultError)
		return ImportReport{}, err
	}
	for i := range habits {
		s.refresh(&habits[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, habits); err != nil {
		metrics.RecordOp("import", metrics.ResultError)
		return ImportReport{}, err
	}
	metrics.RecordOp("import", metrics.ResultOK)
	logger.InfoContext(ctx, "Habits imported", "count", report.Imported, "coerced", report.Coerced)
	return report, nil
}

// Export renders the collection in the JSON shape Import accepts.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	habits, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]codec.Record, 0, len(habits))
	for _, h := range habits {
		records = append(records, codec.FromHabit(h))
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return data, nil
}
