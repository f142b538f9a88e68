// Package hotkey turns global keyboard shortcuts into events on a
// channel. It wraps github.com/robotn/gohook; the OS-level hook runs
// on its own goroutine and hands activations to the consumer over a
// small buffered channel, dropping activations that arrive while the
// consumer is still busy.
package hotkey

import (
	"fmt"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"

	"github.com/snapvault/snapvault/internal/logging"
)

// eventBuffer bounds how many pending activations queue up before new
// ones are dropped.
const eventBuffer = 4

// Event is one hotkey activation. Name is the binding name the combo
// was registered under.
type Event struct {
	Name string
}

// Combo is a parsed shortcut like ctrl+shift+s.
type Combo struct {
	keys []string
}

// ParseCombo parses a shortcut spec of the form "mod+mod+key",
// case-insensitive, e.g. "Ctrl+Shift+S". Aliases win/super map to cmd,
// esc to escape.
func ParseCombo(spec string) (Combo, error) {
	parts := strings.Split(strings.ToLower(spec), "+")
	var keys []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			return Combo{}, fmt.Errorf("hotkey: empty key in combo %q", spec)
		case "win", "super":
			keys = append(keys, "cmd")
		case "esc":
			keys = append(keys, "escape")
		default:
			keys = append(keys, part)
		}
	}
	if len(keys) == 0 {
		return Combo{}, fmt.Errorf("hotkey: empty combo")
	}
	return Combo{keys: keys}, nil
}

// Keys returns the normalized key names of the combo.
func (c Combo) Keys() []string {
	return append([]string(nil), c.keys...)
}

func (c Combo) String() string {
	return strings.Join(c.keys, "+")
}

// Listener owns the OS keyboard hook and the registered bindings.
type Listener struct {
	logger logging.Logger
	events chan Event

	mu       sync.Mutex
	bindings map[string]Combo
	started  bool
}

// NewListener creates a Listener. Bindings are added with Bind before
// Start.
func NewListener(logger logging.Logger) *Listener {
	return &Listener{
		logger:   logger,
		events:   make(chan Event, eventBuffer),
		bindings: make(map[string]Combo),
	}
}

// Bind registers a named shortcut. Must be called before Start.
func (l *Listener) Bind(name, spec string) error {
	combo, err := ParseCombo(spec)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return fmt.Errorf("hotkey: bind %q after start", name)
	}
	if _, ok := l.bindings[name]; ok {
		return fmt.Errorf("hotkey: duplicate binding %q", name)
	}
	l.bindings[name] = combo
	return nil
}

// Events returns the activation channel. It is closed when the hook
// shuts down.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Start installs the OS hook and begins delivering events. It returns
// immediately; the hook runs until Stop.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return fmt.Errorf("hotkey: already started")
	}
	if len(l.bindings) == 0 {
		return fmt.Errorf("hotkey: no bindings")
	}

	for name, combo := range l.bindings {
		name := name
		gohook.Register(gohook.KeyDown, combo.Keys(), func(gohook.Event) {
			select {
			case l.events <- Event{Name: name}:
			default:
				l.logger.Warn("dropping hotkey activation, consumer busy", "binding", name)
			}
		})
		l.logger.Debug("hotkey bound", "binding", name, "combo", combo.String())
	}

	l.started = true
	go func() {
		<-gohook.Process(gohook.Start())
		close(l.events)
	}()
	return nil
}

// Stop removes the OS hook. The event channel closes shortly after.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started {
		return
	}
	gohook.End()
}
