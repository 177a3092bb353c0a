package hotkey

import (
	"fmt"
	"strings"
)

// Combo is a parsed modifier+key spec. Key is a single lower-case
// letter, digit, or "space".
type Combo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Super bool
	Key   string
}

// ParseCombo parses specs like "ctrl+shift+d" or "super+space".
func ParseCombo(spec string) (Combo, error) {
	var c Combo
	parts := strings.Split(strings.ToLower(strings.TrimSpace(spec)), "+")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		last := i == len(parts)-1
		switch p {
		case "ctrl", "control":
			c.Ctrl = true
		case "shift":
			c.Shift = true
		case "alt":
			c.Alt = true
		case "super", "meta", "cmd", "win":
			c.Super = true
		default:
			if !last {
				return Combo{}, fmt.Errorf("hotkey %q: unknown modifier %q", spec, p)
			}
			if !validKey(p) {
				return Combo{}, fmt.Errorf("hotkey %q: unsupported key %q", spec, p)
			}
			c.Key = p
		}
	}
	if c.Key == "" {
		return Combo{}, fmt.Errorf("hotkey %q: missing key", spec)
	}
	if !c.Ctrl && !c.Shift && !c.Alt && !c.Super {
		return Combo{}, fmt.Errorf("hotkey %q: at least one modifier required", spec)
	}
	return c, nil
}

func validKey(k string) bool {
	if k == "space" {
		return true
	}
	if len(k) != 1 {
		return false
	}
	b := k[0]
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Super {
		parts = append(parts, "super")
	}
	return strings.Join(append(parts, c.Key), "+")
}
