// Package hotkey delivers global key-combination events regardless of
// window focus. The combo comes from the config file ("ctrl+shift+d").
package hotkey

type Hotkey interface {
	Register() error
	Unregister()
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
}
