package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brk3/habits/internal/codec"
	"github.com/brk3/habits/internal/config"
	"github.com/brk3/habits/internal/daykey"
	"github.com/brk3/habits/internal/habitstore"
	"github.com/brk3/habits/internal/logger"
	"github.com/brk3/habits/internal/metrics"
	"github.com/brk3/habits/internal/storage"
	"github.com/brk3/habits/internal/storage/bolt"
	"github.com/brk3/habits/internal/storage/memory"
	"github.com/brk3/habits/internal/storage/sqlite"
	"github.com/brk3/habits/pkg/habit"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	backendFlag string
	dbFlag      string

	cfg      *config.Config
	kv       storage.KV
	store    *habitstore.Store
	started  time.Time
	errNoRef = errors.New("habit not found")
)

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Log habits and track streaks",
	Long: `
	Habits is a CLI tool to track recurring activities over time. Every log is kept,
	and streaks, best streaks and 30 day completion rates are derived from them.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func Execute() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the CLI. Failed commands skip teardown, so their cleanup and
// metrics happen here.
func execute() error {
	c, err := rootCmd.ExecuteC()
	if err != nil {
		name := rootCmd.Name()
		if c != nil {
			name = c.Name()
		}
		closeStore()
		metrics.ObserveCommand(name, metrics.ResultError, time.Since(started).Seconds())
		writeTextfile()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HABITS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: bolt, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "database file path")
}

func setup(cmd *cobra.Command, args []string) error {
	started = time.Now()

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if backendFlag != "" {
		cfg.Backend = backendFlag
	}
	if dbFlag != "" {
		cfg.DBPath = dbFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	switch {
	case cfg.LogFile != "":
		logger.InitFile(cfg.LogFile, level)
	case cfg.LogFormat == "json":
		logger.InitJSON(level)
	default:
		logger.Init(level)
	}

	c, err := codec.ByName(cfg.Codec)
	if err != nil {
		return err
	}
	kv, err = openKV(cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	store = habitstore.New(kv, habitstore.WithCodec(c), habitstore.WithKey(cfg.StorageKey))
	logger.Debug("Store ready", "backend", cfg.Backend, "path", cfg.DBPath, "codec", c.Name())
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	closeStore()
	metrics.ObserveCommand(cmd.Name(), metrics.ResultOK, time.Since(started).Seconds())
	writeTextfile()
	return nil
}

func writeTextfile() {
	if cfg == nil {
		return
	}
	if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
		logger.Warn("Failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
	}
}

// skipStore is the pre-run hook of commands that never touch habit data.
func skipStore(cmd *cobra.Command, args []string) error {
	started = time.Now()
	return nil
}

func openKV(c *config.Config) (storage.KV, error) {
	switch c.Backend {
	case "sqlite":
		s, err := sqlite.Open(c.DBPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return memory.New(), nil
	default:
		s, err := bolt.Open(c.DBPath, c.OpenTimeout)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func closeStore() {
	if kv == nil {
		return
	}
	if err := kv.Close(); err != nil {
		logger.Warn("Failed to close store", "error", err)
	}
	kv, store = nil, nil
}

// resolve finds a habit by ID, falling back to an exact, unique name match.
func resolve(cmd *cobra.Command, ref string) (habit.Habit, error) {
	habits, err := store.Load(cmd.Context())
	if err != nil {
		return habit.Habit{}, err
	}

	var byName []habit.Habit
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
		if h.Name == ref {
			byName = append(byName, h)
		}
	}
	switch len(byName) {
	case 0:
		return habit.Habit{}, fmt.Errorf("%w: %q", errNoRef, ref)
	case 1:
		return byName[0], nil
	}
	ids := make([]string, len(byName))
	for i, h := range byName {
		ids[i] = h.ID
	}
	return habit.Habit{}, fmt.Errorf("%q matches several habits, use an ID: %s", ref, strings.Join(ids, ", "))
}

// occurrenceTime returns now, or the same time of day on the --date day.
func occurrenceTime(date string, now time.Time) (time.Time, error) {
	if date == "" {
		return now, nil
	}
	day, err := daykey.Parse(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, want YYYY-MM-DD", date)
	}
	y, m, d := day.Date()
	now = now.In(time.Local)
	return time.Date(y, m, d, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.Local), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

// found turns a mutator's (habit, ok, err) result into output or an error.
func found(cmd *cobra.Command, h habit.Habit, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return errNoRef
	}
	return printJSON(cmd, h)
}
