package habitstore

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brk3/habits/internal/codec"
	"github.com/brk3/habits/internal/daykey"
)

func TestImport_MalformedWritesNothing(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	mustCreate(t, s, "guitar")
	before, _, _ := kv.Get(ctx, DefaultKey)

	for _, raw := range []string{`{"habits": []}`, `[1]`, `not json`} {
		if _, err := s.Import(ctx, []byte(raw)); !errors.Is(err, codec.ErrMalformedImport) {
			t.Fatalf("Import(%q) err = %v", raw, err)
		}
	}
	after, _, _ := kv.Get(ctx, DefaultKey)
	if !bytes.Equal(before, after) {
		t.Fatal("rejected import modified the store")
	}
}

func TestImport_ReplacesAndRecomputes(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	mustCreate(t, s, "to be replaced")

	today := daykey.Key(testNow)
	yesterday := daykey.Key(daysAgo(1))
	raw := `[
		{"id": "a", "name": "guitar", "createdAt": "2024-01-01T00:00:00Z", "streak": 99,
		 "completedDates": ["` + today + `", "` + yesterday + `"]},
		{"name": "", "completedDates": 7},
		{"id": "a", "name": "dupe", "createdAt": "2024-01-01T00:00:00Z", "completedDates": []}
	]`

	report, err := s.Import(ctx, []byte(raw))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if report.Imported != 3 || report.Coerced != 1 {
		t.Fatalf("report = %+v", report)
	}

	all := s.GetAll(ctx)
	if len(all) != 3 {
		t.Fatalf("expected 3 habits, got %d", len(all))
	}
	if all[0].ID != "a" || all[0].Streak != 2 || all[0].LastCompleted == nil {
		t.Fatalf("derived fields not recomputed: %+v", all[0])
	}
	if all[1].Name != codec.PlaceholderName || len(all[1].CompletedDates) != 0 {
		t.Fatalf("defaults not applied: %+v", all[1])
	}
	if all[2].ID == "a" || all[1].ID == all[2].ID {
		t.Fatalf("ids not unique: %s %s %s", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	src, _ := newTestStore(t)
	ctx := context.Background()
	h := mustCreate(t, src, "guitar")
	src.LogOccurrence(ctx, h.ID, daysAgo(0))
	src.LogOccurrence(ctx, h.ID, daysAgo(1))
	src.RecordSkip(ctx, h.ID, daysAgo(4))
	src.SetArchived(ctx, mustCreate(t, src, "old").ID, true)

	data, err := src.Export(ctx)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst, _ := newTestStore(t)
	report, err := dst.Import(ctx, data)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if report.Coerced != 0 || report.Imported != 2 {
		t.Fatalf("report = %+v", report)
	}

	a, b := src.GetAll(ctx), dst.GetAll(ctx)
	if len(a) != len(b) {
		t.Fatalf("len %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Streak != b[i].Streak || a[i].Archived != b[i].Archived ||
			len(a[i].CompletedDates) != len(b[i].CompletedDates) || len(a[i].SkippedDates) != len(b[i].SkippedDates) {
			t.Fatalf("habit %d differs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestImport_OutOfRangeEpochIsCoerced(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	raw := `[
		{"id": "a", "name": "guitar", "createdAt": "2024-01-01T00:00:00Z", "completedDates": []},
		{"id": "b", "name": "bad", "createdAt": -1e300, "completedDates": [1e18, 1717243200000]}
	]`
	report, err := s.Import(ctx, []byte(raw))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if report.Imported != 2 || report.Coerced != 1 {
		t.Fatalf("report = %+v", report)
	}

	all := s.GetAll(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(all))
	}
	b := all[1]
	if len(b.CompletedDates) != 1 || !b.CompletedDates[0].Equal(time.UnixMilli(1717243200000)) {
		t.Fatalf("out of range date not dropped: %v", b.CompletedDates)
	}
	if !b.CreatedAt.Equal(testNow) {
		t.Fatalf("createdAt = %v, want import time", b.CreatedAt)
	}
}
