// Package window resolves the currently focused window: its title, for
// filename generation, and its geometry, for window-mode captures.
// Resolution shells out to platform tools, so everything here is best
// effort; a blank Info is a normal answer, not an error.
package window

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/snapvault/snapvault/internal/logging"
)

// DefaultTimeout bounds each shell-out to the platform window tools.
const DefaultTimeout = 2 * time.Second

// Info describes the active window. Title may be empty and Bounds may
// be the zero rectangle when the platform tools are unavailable.
type Info struct {
	Title  string
	Bounds image.Rectangle
}

// Provider reports the active window.
type Provider interface {
	Active() Info
}

// ExecProvider resolves the active window by running xdotool on Linux
// and osascript on macOS. On other platforms, or when the tool is
// missing, it returns a blank Info.
type ExecProvider struct {
	timeout time.Duration
	logger  logging.Logger
}

// NewExecProvider creates an ExecProvider using the given logger.
func NewExecProvider(logger logging.Logger) *ExecProvider {
	return &ExecProvider{timeout: DefaultTimeout, logger: logger}
}

// Active implements Provider.
func (p *ExecProvider) Active() Info {
	switch runtime.GOOS {
	case "linux":
		return p.activeLinux()
	case "darwin":
		return p.activeDarwin()
	default:
		p.logger.Debug("no window provider for platform", "goos", runtime.GOOS)
		return Info{}
	}
}

func (p *ExecProvider) activeLinux() Info {
	title, err := p.run("xdotool", "getactivewindow", "getwindowname")
	if err != nil {
		p.logger.Debug("active window title lookup failed", "error", err)
		return Info{}
	}

	info := Info{Title: strings.TrimSpace(title)}

	geom, err := p.run("xdotool", "getactivewindow", "getwindowgeometry", "--shell")
	if err != nil {
		p.logger.Debug("active window geometry lookup failed", "error", err)
		return info
	}
	info.Bounds = parseShellGeometry(geom)
	return info
}

func (p *ExecProvider) activeDarwin() Info {
	const script = `tell application "System Events" to get name of first application process whose frontmost is true`
	title, err := p.run("osascript", "-e", script)
	if err != nil {
		p.logger.Debug("active window title lookup failed", "error", err)
		return Info{}
	}
	// osascript gives no reliable window geometry without accessibility
	// grants, so window captures on macOS fall back to fullscreen.
	return Info{Title: strings.TrimSpace(title)}
}

func (p *ExecProvider) run(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("window: %s %s: %w (%s)", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// parseShellGeometry reads `xdotool getwindowgeometry --shell` output
// (X=.. Y=.. WIDTH=.. HEIGHT=.. lines). Missing or malformed fields
// yield the zero rectangle.
func parseShellGeometry(out string) image.Rectangle {
	vars := map[string]int{}
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		vars[key] = n
	}

	w, h := vars["WIDTH"], vars["HEIGHT"]
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	x, y := vars["X"], vars["Y"]
	return image.Rect(x, y, x+w, y+h)
}

// StaticProvider returns a fixed Info. Used in tests and headless runs.
type StaticProvider struct {
	Info Info
}

// Active implements Provider.
func (p *StaticProvider) Active() Info {
	return p.Info
}
