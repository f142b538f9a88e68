/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapvault/snapvault/internal/colors"
	"github.com/snapvault/snapvault/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Show or change configuration",
	Long: `Show or change configuration.

With no arguments, prints every key and its effective value. With a key,
prints that key's value. With a key and a value, validates, applies, and
writes the change to the config file.

Any key can also be overridden per-invocation with an environment
variable, e.g. storage.organize_by becomes SNAPVAULT_STORAGE_ORGANIZE_BY.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		show, err := cmd.Flags().GetBool("show")
		if err != nil {
			return fmt.Errorf("invalid show flag: %w", err)
		}
		if show && len(args) > 0 {
			return fmt.Errorf("--show takes no arguments")
		}

		switch len(args) {
		case 0:
			for _, key := range cfg.Keys() {
				cmd.Printf("%s = %s\n", key, cfg.Get(key, ""))
			}
			cmd.Printf("\n# config file: %s\n", cfg.ConfigPath())
			return nil
		case 1:
			key := args[0]
			if !knownKey(cfg, key) {
				return fmt.Errorf("unknown config key %q", key)
			}
			cmd.Println(cfg.Get(key, ""))
			return nil
		default:
			key, value := args[0], args[1]
			if err := cfg.Set(key, value); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("%s = %s", key, value))
			return nil
		}
	},
}

func knownKey(cfg *config.Config, key string) bool {
	for _, k := range cfg.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("show", false, "Print every key and its effective value (the default with no arguments)")
}
