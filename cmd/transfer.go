package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var resetConfirmed bool

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all habits with a JSON export",
	Long: `The "import" command replaces every stored habit with the contents of FILE
("-" reads stdin). The file must hold a JSON array of habit objects; fields that
cannot be read are defaulted and counted as coerced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}

		report, err := store.Import(cmd.Context(), data)
		if err != nil {
			return err
		}
		return printJSON(cmd, report)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write all habits as JSON",
	Long:  `The "export" command writes every habit, archived ones included, to FILE or stdout.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := store.Export(cmd.Context())
		if err != nil {
			return err
		}
		if len(args) == 0 {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}
		return os.WriteFile(args[0], append(data, '\n'), 0600)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every habit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirmed {
			return errors.New("reset deletes all habits, pass --yes to confirm")
		}
		if err := store.ClearAll(cmd.Context()); err != nil {
			return err
		}
		return printJSON(cmd, map[string]bool{"reset": true})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "confirm deleting all habits")
}
