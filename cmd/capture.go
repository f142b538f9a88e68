/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"image"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snapvault/snapvault/internal/app"
	"github.com/snapvault/snapvault/internal/catalog"
	"github.com/snapvault/snapvault/internal/colors"
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Take a screenshot and save it",
	Long: `Take a screenshot and save it.

Captures the full screen by default. Use --window for the active window
or --region for a fixed rectangle. The file is named and organized
according to the storage configuration; --output bypasses both, and
--output - combined with --clipboard skips the file entirely.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fullscreen, err := cmd.Flags().GetBool("fullscreen")
		if err != nil {
			return fmt.Errorf("invalid fullscreen flag: %w", err)
		}
		windowMode, err := cmd.Flags().GetBool("window")
		if err != nil {
			return fmt.Errorf("invalid window flag: %w", err)
		}
		regionSpec, err := cmd.Flags().GetString("region")
		if err != nil {
			return fmt.Errorf("invalid region flag: %w", err)
		}
		toClipboard, err := cmd.Flags().GetBool("clipboard")
		if err != nil {
			return fmt.Errorf("invalid clipboard flag: %w", err)
		}
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return fmt.Errorf("invalid output flag: %w", err)
		}

		if windowMode && regionSpec != "" {
			return fmt.Errorf("--window and --region are mutually exclusive")
		}
		if fullscreen && (windowMode || regionSpec != "") {
			return fmt.Errorf("--fullscreen cannot be combined with --window or --region")
		}
		if output == "-" && !toClipboard {
			return fmt.Errorf("--output - requires --clipboard")
		}

		mode := catalog.ModeFullscreen
		opts := app.CaptureOptions{ToClipboard: toClipboard, OutputPath: output}
		switch {
		case windowMode:
			mode = catalog.ModeWindow
		case regionSpec != "":
			mode = catalog.ModeRegion
			opts.Region, err = parseRegionSpec(regionSpec)
			if err != nil {
				return err
			}
		}

		e, err := newEnv("capture")
		if err != nil {
			return err
		}
		defer e.close()

		result, err := e.app.Capture(mode, opts)
		if err != nil {
			colors.Error(fmt.Sprintf("capture failed: %v", err))
			return err
		}
		e.app.AutoSweep()

		if result.Path != "" {
			cmd.Println(result.Path)
		}
		if result.Copied {
			colors.Success("copied to clipboard")
		}
		return nil
	},
}

// parseRegionSpec parses "x,y,WxH" into a rectangle.
func parseRegionSpec(spec string) (image.Rectangle, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q: expected x,y,WxH", spec)
	}
	var x, y, w, h int
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[0]), "%d", &x); err != nil {
		return image.Rectangle{}, fmt.Errorf("invalid region x %q", parts[0])
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &y); err != nil {
		return image.Rectangle{}, fmt.Errorf("invalid region y %q", parts[1])
	}
	if _, err := fmt.Sscanf(strings.TrimSpace(parts[2]), "%dx%d", &w, &h); err != nil {
		return image.Rectangle{}, fmt.Errorf("invalid region size %q: expected WxH", parts[2])
	}
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("region size must be positive, got %dx%d", w, h)
	}
	return image.Rect(x, y, x+w, y+h), nil
}

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().Bool("fullscreen", false, "Capture the full screen (the default)")
	captureCmd.Flags().Bool("window", false, "Capture the active window instead of the full screen")
	captureCmd.Flags().String("region", "", "Capture a fixed region given as x,y,WxH (e.g. 100,100,800x600)")
	captureCmd.Flags().Bool("clipboard", false, "Also copy the capture to the clipboard")
	captureCmd.Flags().StringP("output", "o", "", "Write to an exact path instead of the configured save location (- for clipboard only)")
}
