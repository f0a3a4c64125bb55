package cmd

import (
	"github.com/brk3/habits/pkg/habit"
	"github.com/spf13/cobra"
)

var (
	listArchived bool
	listAll      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long: `The "list" command prints a summary of each habit: current and longest
streak, 30 day completion rate and totals. Archived habits are hidden unless
--archived or --all is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sums := store.Summaries(cmd.Context(), listArchived || listAll)
		if listArchived {
			archived := []habit.Summary{}
			for _, s := range sums {
				if s.Archived {
					archived = append(archived, s)
				}
			}
			sums = archived
		}
		return printJSON(cmd, sums)
	},
}

var showCmd = &cobra.Command{
	Use:   "show REF",
	Short: "Show one habit's statistics and recent history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := resolve(cmd, args[0])
		if err != nil {
			return err
		}
		sum, ok, err := store.Summary(cmd.Context(), h.ID)
		if err != nil {
			return err
		}
		if !ok {
			return errNoRef
		}
		return printJSON(cmd, sum)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)

	listCmd.Flags().BoolVar(&listArchived, "archived", false, "show only archived habits")
	listCmd.Flags().BoolVar(&listAll, "all", false, "show active and archived habits")
	listCmd.MarkFlagsMutuallyExclusive("archived", "all")
}
