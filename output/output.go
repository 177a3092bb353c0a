// Package output delivers final text to the focused window, the system
// clipboard, or both.
package output

import "fmt"

type Mode string

const (
	ModeType      Mode = "type"
	ModeClipboard Mode = "clipboard"
	ModeBoth      Mode = "both"
)

// ParseMode accepts the canonical mode names plus the legacy tool names
// from old config files.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "type", "xdotool":
		return ModeType, nil
	case "clipboard", "xclip":
		return ModeClipboard, nil
	case "both":
		return ModeBoth, nil
	}
	return "", fmt.Errorf("unknown output mode %q (use type, clipboard, or both)", s)
}

// Typer injects synthetic keystrokes into whatever window holds focus.
type Typer interface {
	Type(text string) error
}

// Clipboard replaces the system clipboard contents.
type Clipboard interface {
	Write(text string) error
}

type Dispatcher struct {
	typer Typer
	clip  Clipboard
	warn  func(format string, args ...any)
}

// New builds a dispatcher with the platform typer and clipboard.
func New(warn func(format string, args ...any)) *Dispatcher {
	return NewWith(newTyper(), systemClipboard{}, warn)
}

func NewWith(t Typer, c Clipboard, warn func(format string, args ...any)) *Dispatcher {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return &Dispatcher{typer: t, clip: c, warn: warn}
}

// Emit sends text to the sinks selected by mode. Injection is
// fire-and-forget: there is no way to tell whether the focused window
// accepted the keystrokes, so failures are logged and swallowed.
func (d *Dispatcher) Emit(text string, mode Mode) {
	if text == "" {
		return
	}
	if mode == ModeClipboard || mode == ModeBoth {
		if err := d.clip.Write(text); err != nil {
			d.warn("clipboard write failed: %v", err)
		}
	}
	if mode == ModeType || mode == ModeBoth {
		if err := d.typer.Type(text); err != nil {
			d.warn("typing failed: %v", err)
		}
	}
}
