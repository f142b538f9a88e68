/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/snapvault/snapvault/internal/clipboard"
	"github.com/snapvault/snapvault/internal/colors"
	"github.com/snapvault/snapvault/internal/eventloop"
	"github.com/snapvault/snapvault/internal/hotkey"
	"github.com/snapvault/snapvault/internal/tray"
)

// trayCmd represents the tray command
var trayCmd = &cobra.Command{
	Use:   "tray",
	Short: "Run resident with a tray icon and global hotkeys",
	Long: `Run resident with a tray icon and global hotkeys.

Stays in the system tray and captures on the configured hotkeys or from
the tray menu. Runs until Quit is picked from the menu.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv("tray")
		if err != nil {
			return err
		}
		defer e.close()

		if err := clipboard.Init(); err != nil {
			// Captures can still be saved without a clipboard.
			colors.Warning("clipboard unavailable: " + err.Error())
		}

		listener := hotkey.NewListener(e.logger)
		bindings := map[string]string{
			eventloop.ActionQuickCapture:  e.cfg.Get("hotkeys.quick_capture", ""),
			eventloop.ActionWindowCapture: e.cfg.Get("hotkeys.window_capture", ""),
			eventloop.ActionRegionCapture: e.cfg.Get("hotkeys.region_capture", ""),
		}
		for name, spec := range bindings {
			if spec == "" {
				continue
			}
			if err := listener.Bind(name, spec); err != nil {
				colors.Warning("skipping hotkey " + spec + ": " + err.Error())
			}
		}
		if err := listener.Start(); err != nil {
			colors.Warning("hotkeys disabled: " + err.Error())
			listener = nil
		} else {
			defer listener.Stop()
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		loopOpts := []eventloop.Option{}
		if listener != nil {
			loopOpts = append(loopOpts, eventloop.WithHotkeys(listener))
		}
		loop := eventloop.New(e.app, e.logger, loopOpts...)
		t := tray.New(loop, e.logger, cancel)
		t.OnHistory = func() {
			dir := e.cfg.Get("storage.save_location", "")
			if err := openFolder(dir); err != nil {
				e.logger.Warn("open capture folder", "dir", dir, "error", err)
			}
		}
		loop.SetNotifier(t)

		go func() {
			<-ctx.Done()
			t.Quit()
		}()
		go func() { _ = loop.Run(ctx) }()

		e.app.AutoSweep()
		// Blocks until quit; must stay on the main goroutine.
		t.Run()
		return nil
	},
}

// openFolder opens dir in the platform file manager.
func openFolder(dir string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", dir).Start()
	case "linux":
		return exec.Command("xdg-open", dir).Start()
	default:
		return fmt.Errorf("no folder opener for %s", runtime.GOOS)
	}
}

func init() {
	rootCmd.AddCommand(trayCmd)
}
