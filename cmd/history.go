/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapvault/snapvault/internal/format"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List catalogued captures",
	Long: `List catalogued captures, newest first.

Use --search to filter by a case-insensitive substring over filename,
window name, tags, and notes. Output formats: simple (default), table,
json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return fmt.Errorf("invalid limit value: %w", err)
		}
		offset, err := cmd.Flags().GetInt("offset")
		if err != nil {
			return fmt.Errorf("invalid offset value: %w", err)
		}
		term, err := cmd.Flags().GetString("search")
		if err != nil {
			return fmt.Errorf("invalid search value: %w", err)
		}
		output, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("invalid format value: %w", err)
		}

		e, err := newEnv("history")
		if err != nil {
			return err
		}
		defer e.close()

		records, err := e.app.History(limit, offset, term)
		if err != nil {
			return err
		}
		return format.Records(cmd.OutOrStdout(), records, output)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 0, "Maximum number of records to show (default: history.max_items config value)")
	historyCmd.Flags().Int("offset", 0, "Number of records to skip")
	historyCmd.Flags().StringP("search", "s", "", "Filter by substring over filename, window name, tags, and notes")
	historyCmd.Flags().StringP("format", "f", format.OutputSimple, "Output format: simple, table, or json")
}
