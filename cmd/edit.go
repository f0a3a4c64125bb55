package cmd

import (
	"errors"

	"github.com/brk3/habits/pkg/habit"
	"github.com/spf13/cobra"
)

var (
	editName        string
	editDescription string
	editIcon        string
)

var editCmd = &cobra.Command{
	Use:   "edit REF",
	Short: "Change a habit's name, description or icon",
	Long: `The "edit" command updates only the fields given as flags. Pass an empty
value to clear the description or icon.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var p habit.Patch
		if cmd.Flags().Changed("name") {
			p.Name = &editName
		}
		if cmd.Flags().Changed("description") {
			p.Description = &editDescription
		}
		if cmd.Flags().Changed("icon") {
			p.Icon = &editIcon
		}
		if p == (habit.Patch{}) {
			return errors.New("nothing to change, pass --name, --description or --icon")
		}

		h, err := resolve(cmd, args[0])
		if err != nil {
			return err
		}
		got, ok, err := store.Update(cmd.Context(), h.ID, p)
		return found(cmd, got, ok, err)
	},
}

func archiveCmd(use, short string, archived bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " REF",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := resolve(cmd, args[0])
			if err != nil {
				return err
			}
			got, ok, err := store.SetArchived(cmd.Context(), h.ID, archived)
			return found(cmd, got, ok, err)
		},
	}
}

var deleteCmd = &cobra.Command{
	Use:   "delete REF",
	Short: "Delete a habit and its whole log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := resolve(cmd, args[0])
		if err != nil {
			return err
		}
		ok, err := store.Delete(cmd.Context(), h.ID)
		if err != nil {
			return err
		}
		if !ok {
			return errNoRef
		}
		return printJSON(cmd, map[string]string{"deleted": h.ID})
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(archiveCmd("archive", "Hide a habit from the default list", true))
	rootCmd.AddCommand(archiveCmd("unarchive", "Bring an archived habit back", false))
	rootCmd.AddCommand(deleteCmd)

	editCmd.Flags().StringVar(&editName, "name", "", "new name")
	editCmd.Flags().StringVar(&editDescription, "description", "", "new description")
	editCmd.Flags().StringVar(&editIcon, "icon", "", "new icon")
}
