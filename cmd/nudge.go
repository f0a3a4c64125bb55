package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/brk3/habits/internal/keyring"
	"github.com/brk3/habits/internal/nudge"
	"github.com/brk3/habits/internal/nudge/resend"
	"github.com/spf13/cobra"
)

var nudgeDryRun bool

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Send a reminder for habit streaks expiring within a certain window",
	Long: `The "nudge" command emails the configured address when a streak will end
within nudge.threshold_hours unless the habit is logged. The Resend API key is
read from config, $HABITS_RESEND_API_KEY or the OS keyring (see "nudge set-key").`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold := time.Duration(cfg.Nudge.ThresholdHours) * time.Hour
		now := store.Now()

		if nudgeDryRun {
			expiring, err := nudge.GetHabitsExpiringIn(cmd.Context(), store, threshold, now)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"expiring": expiring, "sent": false})
		}

		if cfg.Nudge.Email == "" {
			return errors.New("no recipient: set nudge.email or HABITS_NOTIFY_EMAIL")
		}
		apiKey, err := keyring.ResolveResendAPIKey(cfg.Nudge.ResendAPIKey)
		if err != nil {
			return fmt.Errorf("resend API key: %w", err)
		}
		n := &resend.ResendNotifier{
			ApiKey: apiKey,
			Email:  cfg.Nudge.Email,
			From:   cfg.Nudge.From,
		}
		sent, err := nudge.Nudge(cmd.Context(), store, n, threshold, now)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]any{"expiring": sent, "sent": len(sent) > 0})
	},
}

var setKeyCmd = &cobra.Command{
	Use:               "set-key [KEY]",
	Short:             "Save the Resend API key in the OS keyring",
	Long:              `The "set-key" command stores KEY, or a line read from stdin, in the OS keyring.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: skipStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		key := ""
		if len(args) == 1 {
			key = args[0]
		} else {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			key = strings.TrimSpace(string(b))
		}
		if err := keyring.SetResendAPIKey(key); err != nil {
			return err
		}
		cmd.PrintErrln("API key saved to keyring")
		return nil
	},
}

var deleteKeyCmd = &cobra.Command{
	Use:               "delete-key",
	Short:             "Remove the Resend API key from the OS keyring",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := keyring.DeleteResendAPIKey(); err != nil {
			return err
		}
		cmd.PrintErrln("API key removed from keyring")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nudgeCmd)
	nudgeCmd.AddCommand(setKeyCmd)
	nudgeCmd.AddCommand(deleteKeyCmd)

	nudgeCmd.Flags().BoolVar(&nudgeDryRun, "dry-run", false, "list expiring streaks without sending email")
}
