/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove captures older than the retention window",
	Long: `Remove captures older than the retention window.

Deletes catalog records and their files when the capture is older than
the given number of days. With no --days the auto_delete.days_to_keep
config value applies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := cmd.Flags().GetInt("days")
		if err != nil {
			return fmt.Errorf("invalid days value: %w", err)
		}
		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return fmt.Errorf("invalid dry-run flag: %w", err)
		}
		if days < 0 {
			return fmt.Errorf("days must be a positive integer")
		}

		e, err := newEnv("cleanup")
		if err != nil {
			return err
		}
		defer e.close()

		count, err := e.app.Sweep(days, dryRun)
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}

		if dryRun {
			cmd.Printf("%d capture(s) would be removed\n", count)
		} else {
			cmd.Printf("Removed %d capture(s)\n", count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	// Default days 0 means "use config value"
	cleanupCmd.Flags().Int("days", 0, "Remove captures older than N days (default: auto_delete.days_to_keep config value)")
	cleanupCmd.Flags().Bool("dry-run", false, "Show what would be deleted without actually deleting")
}
