package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brk3/habits/pkg/habit"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCollection(t *testing.T) {
	ObserveCollection([]habit.Habit{
		{ID: "a", Name: "guitar", Streak: 4},
		{ID: "b", Name: "read", Streak: 1},
		{ID: "c", Name: "old", Archived: true},
	})

	if got := testutil.ToFloat64(activeHabits); got != 2 {
		t.Errorf("active = %v want 2", got)
	}
	if got := testutil.ToFloat64(archivedHabits); got != 1 {
		t.Errorf("archived = %v want 1", got)
	}
	if got := testutil.ToFloat64(currentStreak.WithLabelValues("a", "guitar")); got != 4 {
		t.Errorf("streak = %v want 4", got)
	}

	ObserveCollection(nil)
	if got := testutil.CollectAndCount(currentStreak); got != 0 {
		t.Errorf("expected streak series to be reset, got %d", got)
	}
}

func TestRecordOp(t *testing.T) {
	before := testutil.ToFloat64(storeOperationsTotal.WithLabelValues("create", ResultOK))
	RecordOp("create", ResultOK)
	after := testutil.ToFloat64(storeOperationsTotal.WithLabelValues("create", ResultOK))
	if after-before != 1 {
		t.Fatalf("counter moved by %v want 1", after-before)
	}
}

func TestWriteTextfile(t *testing.T) {
	if err := WriteTextfile(""); err != nil {
		t.Fatalf("empty path should be a no-op, got %v", err)
	}

	RecordOp("delete", ResultNotFound)
	path := filepath.Join(t.TempDir(), "habits.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}
	if !strings.Contains(string(data), "habits_store_operations_total") {
		t.Fatalf("textfile missing store counter:\n%s", data)
	}
}
