//go:build !linux

package hotkey

import (
	"fmt"

	xhk "golang.design/x/hotkey"
)

var xKeys = map[string]xhk.Key{
	"a": xhk.KeyA, "b": xhk.KeyB, "c": xhk.KeyC, "d": xhk.KeyD,
	"e": xhk.KeyE, "f": xhk.KeyF, "g": xhk.KeyG, "h": xhk.KeyH,
	"i": xhk.KeyI, "j": xhk.KeyJ, "k": xhk.KeyK, "l": xhk.KeyL,
	"m": xhk.KeyM, "n": xhk.KeyN, "o": xhk.KeyO, "p": xhk.KeyP,
	"q": xhk.KeyQ, "r": xhk.KeyR, "s": xhk.KeyS, "t": xhk.KeyT,
	"u": xhk.KeyU, "v": xhk.KeyV, "w": xhk.KeyW, "x": xhk.KeyX,
	"y": xhk.KeyY, "z": xhk.KeyZ,
	"0": xhk.Key0, "1": xhk.Key1, "2": xhk.Key2, "3": xhk.Key3,
	"4": xhk.Key4, "5": xhk.Key5, "6": xhk.Key6, "7": xhk.Key7,
	"8": xhk.Key8, "9": xhk.Key9,
	"space": xhk.KeySpace,
}

type xHotkey struct {
	combo   Combo
	hk      *xhk.Hotkey
	keydown chan struct{}
	keyup   chan struct{}
}

func New(combo Combo) Hotkey {
	return &xHotkey{
		combo:   combo,
		keydown: make(chan struct{}, 1),
		keyup:   make(chan struct{}, 1),
	}
}

func (h *xHotkey) Register() error {
	key, ok := xKeys[h.combo.Key]
	if !ok {
		return fmt.Errorf("unsupported hotkey key %q", h.combo.Key)
	}
	var mods []xhk.Modifier
	if h.combo.Ctrl {
		mods = append(mods, xhk.ModCtrl)
	}
	if h.combo.Shift {
		mods = append(mods, xhk.ModShift)
	}
	if h.combo.Alt {
		mods = append(mods, modAlt)
	}
	if h.combo.Super {
		mods = append(mods, modSuper)
	}

	h.hk = xhk.New(mods, key)
	if err := h.hk.Register(); err != nil {
		return err
	}
	go func() {
		for {
			<-h.hk.Keydown()
			select {
			case h.keydown <- struct{}{}:
			default:
			}
		}
	}()
	go func() {
		for {
			<-h.hk.Keyup()
			select {
			case h.keyup <- struct{}{}:
			default:
			}
		}
	}()
	return nil
}

func (h *xHotkey) Unregister() {
	if h.hk != nil {
		h.hk.Unregister()
	}
}

func (h *xHotkey) Keydown() <-chan struct{} {
	return h.keydown
}

func (h *xHotkey) Keyup() <-chan struct{} {
	return h.keyup
}
