package metrics

import (
	"github.com/brk3/habits/internal/logger"
	"github.com/brk3/habits/pkg/habit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_store_operations_total",
			Help: "Total number of store operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habits_command_duration_seconds",
			Help:    "Duration of CLI commands in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command", "status"},
	)

	activeHabits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "habits_active_habits_total",
			Help: "Number of habits that are not archived",
		},
	)

	archivedHabits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "habits_archived_habits_total",
			Help: "Number of archived habits",
		},
	)

	currentStreak = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "habits_current_streak_days",
			Help: "Current streak per habit as of the last write",
		},
		[]string{"habit_id", "habit_name"},
	)
)

func RecordOp(operation, result string) {
	storeOperationsTotal.WithLabelValues(operation, result).Inc()
}

func ObserveCommand(command, status string, seconds float64) {
	commandDuration.WithLabelValues(command, status).Observe(seconds)
}

// ObserveCollection resets the collection gauges to describe habits.
func ObserveCollection(habits []habit.Habit) {
	active, archived := 0, 0
	currentStreak.Reset()
	for _, h := range habits {
		if h.Archived {
			archived++
			continue
		}
		active++
		currentStreak.WithLabelValues(h.ID, h.Name).Set(float64(h.Streak))
	}
	activeHabits.Set(float64(active))
	archivedHabits.Set(float64(archived))
	logger.Debug("Updated collection metrics", "active", active, "archived", archived)
}

// WriteTextfile dumps the default registry in the node_exporter textfile
// collector format. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
