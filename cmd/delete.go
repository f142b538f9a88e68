/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/snapvault/snapvault/internal/colors"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete captures and their files",
	Long: `Delete captures by catalog id.

Removes both the catalog record and the saved file. Deleting an id that
does not exist is reported but is not an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int64, 0, len(args))
		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid capture id %q", arg)
			}
			ids = append(ids, id)
		}

		e, err := newEnv("delete")
		if err != nil {
			return err
		}
		defer e.close()

		for _, id := range ids {
			ok, err := e.app.Delete(id)
			if err != nil {
				return err
			}
			if ok {
				colors.Success(fmt.Sprintf("deleted capture %d", id))
			} else {
				colors.Warning(fmt.Sprintf("no capture with id %d", id))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
