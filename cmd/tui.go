/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/snapvault/snapvault/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse capture history interactively",
	Long: `Browse capture history interactively.

Opens a full-screen browser over the catalog. Search with /, copy a
capture's path with enter, delete with d, quit with q.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv("tui")
		if err != nil {
			return err
		}
		defer e.close()

		return tui.Run(e.app)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
