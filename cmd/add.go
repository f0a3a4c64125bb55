package cmd

import (
	"github.com/brk3/habits/pkg/habit"
	"github.com/spf13/cobra"
)

var draft habit.Draft

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a habit",
	Long:  `The "add" command creates a new habit with an empty log and prints it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := draft
		d.Name = args[0]
		h, err := store.Create(cmd.Context(), d)
		if err != nil {
			return err
		}
		return printJSON(cmd, h)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&draft.Description, "description", "", "free text description")
	addCmd.Flags().StringVar(&draft.Icon, "icon", "", "icon shown next to the name")
	addCmd.Flags().StringVar(&draft.Frequency, "frequency", "", "cadence label, e.g. daily")
	addCmd.Flags().StringVar(&draft.TargetType, "target-type", "", "target kind, e.g. count")
	addCmd.Flags().IntVar(&draft.TargetValue, "target-value", 0, "target amount")
}
