package cmd

import (
	"context"
	"time"

	"github.com/brk3/habits/pkg/habit"
	"github.com/spf13/cobra"
)

var logDate string

type occurrenceOp func(ctx context.Context, id string, t time.Time) (habit.Habit, bool, error)

// occurrenceCmd builds a REF [--date] command around one store operation.
func occurrenceCmd(use, short, long string, op func() occurrenceOp) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " REF",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := occurrenceTime(logDate, store.Now())
			if err != nil {
				return err
			}
			h, err := resolve(cmd, args[0])
			if err != nil {
				return err
			}
			got, ok, err := op()(cmd.Context(), h.ID, t)
			return found(cmd, got, ok, err)
		},
	}
	c.Flags().StringVar(&logDate, "date", "", "day to act on as YYYY-MM-DD (default today)")
	return c
}

var logCmd = occurrenceCmd("log",
	"Log an occurrence of a habit",
	`The "log" command appends an occurrence. Logging several times a day is
allowed; the day counts once towards the streak.`,
	func() occurrenceOp { return store.LogOccurrence })

var unlogCmd = occurrenceCmd("unlog",
	"Remove the most recent occurrence logged on a day",
	`The "unlog" command removes the last occurrence recorded for the day, if any.`,
	func() occurrenceOp { return store.RemoveOccurrence })

var toggleCmd = occurrenceCmd("toggle",
	"Mark a day done, or undo it if it already is",
	`The "toggle" command removes one occurrence on the day when there is one,
otherwise it logs one.`,
	func() occurrenceOp { return store.ToggleCompletion })

var skipCmd = occurrenceCmd("skip",
	"Record a deliberate skip",
	`The "skip" command notes that a day was skipped on purpose. Skips are kept
for reference and do not affect streaks.`,
	func() occurrenceOp { return store.RecordSkip })

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(unlogCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(skipCmd)
}
