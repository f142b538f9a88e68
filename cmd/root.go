/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snapvault/snapvault/internal/app"
	"github.com/snapvault/snapvault/internal/catalog"
	"github.com/snapvault/snapvault/internal/colors"
	"github.com/snapvault/snapvault/internal/config"
	"github.com/snapvault/snapvault/internal/logging"
	"github.com/snapvault/snapvault/internal/version"
	"github.com/snapvault/snapvault/internal/window"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "snapvault",
	Short: "Capture, organize, and find your screenshots.",
	Long:  `Capture, organize, and find your screenshots.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version.Version

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printHelpText(cmd)
	})
}

// env assembles the per-command dependencies: configuration, the
// structured logger, the catalog, and the app pipeline on top of them.
type env struct {
	cfg    *config.Config
	logger logging.Logger
	app    *app.App

	catalog *catalog.Catalog
}

// newEnv builds the command environment. Callers must defer close.
func newEnv(commandName string) (*env, error) {
	cfg := config.Load()

	colors.SetDebug(cfg.GetBool("debug", false))
	colors.SetQuiet(cfg.GetBool("quiet", false))

	logCfg := logging.DefaultConfig()
	logCfg.Enabled = cfg.GetBool("logging.enabled", false)
	logCfg.Level = cfg.Get("logging.level", "info")
	logCfg.MaxFiles = cfg.GetInt("logging.max_files", 10)
	logCfg.StateDir = cfg.StateDir()
	logCfg.Command = commandName
	logger, err := logging.Init(logCfg)
	if err != nil {
		return nil, fmt.Errorf("cmd: init logging: %w", err)
	}
	colors.SetLogger(logger)

	cat, err := catalog.Open(cfg.CatalogPath(), logger)
	if err != nil {
		_ = logger.Shutdown()
		return nil, err
	}

	return &env{
		cfg:     cfg,
		logger:  logger,
		app:     app.New(cfg, cat, window.NewExecProvider(logger), logger),
		catalog: cat,
	}, nil
}

func (e *env) close() {
	if err := e.catalog.Close(); err != nil {
		e.logger.Error("close catalog", "error", err)
	}
	_ = e.logger.Shutdown()
}

// outputWriter allows tests to capture help output.
var outputWriter io.Writer = os.Stdout

func printHelpText(cmd *cobra.Command) {
	commandOrder := []string{
		"capture",
		"history",
		"delete",
		"cleanup",
		"config",
		"tray",
		"tui",
		"help",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`snapvault v%s

Capture, organize, and find your screenshots.

USAGE:
    snapvault [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.Version, strings.Join(cmdLines, "\n"))
	fmt.Fprint(outputWriter, helpText)
}
