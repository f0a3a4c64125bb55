package cmd

import (
	"github.com/brk3/habits/pkg/versioninfo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Show version information",
	Long:              `The "version" command displays the version and build date of this binary.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd, versioninfo.Get())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
