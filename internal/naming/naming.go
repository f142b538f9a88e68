// Package naming generates filesystem-safe screenshot filenames.
package naming

import (
	"strings"
	"time"
	"unicode"

	"github.com/ncruces/go-strftime"
)

const (
	// WindowToken is the literal placeholder replaced with the sanitized window name.
	WindowToken = "{window}"
	// FallbackName is used when no window name is available.
	FallbackName = "screen"
	// MaxWindowNameLen bounds the sanitized window name length in runes.
	MaxWindowNameLen = 50
)

// Generate produces a filename from the naming pattern for the given time.
// The pattern holds strftime date/time tokens plus the {window} placeholder.
// The result carries the extension for the configured output format and is
// a pure function of its inputs.
func Generate(now time.Time, windowName, pattern, format string) string {
	filename := strftime.Format(pattern, now)
	filename = strings.ReplaceAll(filename, WindowToken, windowToken(windowName))
	return filename + "." + strings.ToLower(format)
}

// windowToken returns the sanitized window name, or the fallback token when
// the window name is missing or sanitizes away entirely.
func windowToken(windowName string) string {
	safe := SanitizeWindowName(windowName)
	if safe == "" {
		return FallbackName
	}
	return safe
}

// SanitizeWindowName strips a window title down to characters that are safe
// in filenames: letters, digits, space, hyphen, and underscore. The result
// is trimmed and truncated to MaxWindowNameLen runes.
func SanitizeWindowName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	safe := strings.TrimSpace(b.String())
	runes := []rune(safe)
	if len(runes) > MaxWindowNameLen {
		safe = string(runes[:MaxWindowNameLen])
	}
	return safe
}
