//go:build !linux

package output

import (
	"sync"

	"github.com/micmonay/keybd_event"
)

// keybdTyper drives the OS keyboard-event API on macOS and Windows.
// Coverage is letters, digits and basic whitespace; other characters are
// skipped, matching the fire-and-forget dispatcher contract.
type keybdTyper struct {
	mu   sync.Mutex
	kb   keybd_event.KeyBonding
	err  error
	once sync.Once
}

func newTyper() Typer {
	return &keybdTyper{}
}

var letterKeys = [26]int{
	keybd_event.VK_A, keybd_event.VK_B, keybd_event.VK_C, keybd_event.VK_D,
	keybd_event.VK_E, keybd_event.VK_F, keybd_event.VK_G, keybd_event.VK_H,
	keybd_event.VK_I, keybd_event.VK_J, keybd_event.VK_K, keybd_event.VK_L,
	keybd_event.VK_M, keybd_event.VK_N, keybd_event.VK_O, keybd_event.VK_P,
	keybd_event.VK_Q, keybd_event.VK_R, keybd_event.VK_S, keybd_event.VK_T,
	keybd_event.VK_U, keybd_event.VK_V, keybd_event.VK_W, keybd_event.VK_X,
	keybd_event.VK_Y, keybd_event.VK_Z,
}

var digitKeys = [10]int{
	keybd_event.VK_0, keybd_event.VK_1, keybd_event.VK_2, keybd_event.VK_3,
	keybd_event.VK_4, keybd_event.VK_5, keybd_event.VK_6, keybd_event.VK_7,
	keybd_event.VK_8, keybd_event.VK_9,
}

func charToVK(c byte) (key int, shift bool, ok bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return letterKeys[c-'a'], false, true
	case c >= 'A' && c <= 'Z':
		return letterKeys[c-'A'], true, true
	case c >= '0' && c <= '9':
		return digitKeys[c-'0'], false, true
	case c == ' ':
		return keybd_event.VK_SPACE, false, true
	case c == '\n':
		return keybd_event.VK_ENTER, false, true
	case c == '\t':
		return keybd_event.VK_TAB, false, true
	}
	return 0, false, false
}

func (t *keybdTyper) Type(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.once.Do(func() {
		t.kb, t.err = keybd_event.NewKeyBonding()
	})
	if t.err != nil {
		return t.err
	}
	for i := 0; i < len(text); i++ {
		key, shift, ok := charToVK(text[i])
		if !ok {
			continue
		}
		t.kb.Clear()
		t.kb.SetKeys(key)
		t.kb.HasSHIFT(shift)
		if err := t.kb.Launching(); err != nil {
			return err
		}
	}
	return nil
}
