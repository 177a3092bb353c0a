//go:build windows

package hotkey

import xhk "golang.design/x/hotkey"

const (
	modAlt   = xhk.ModAlt
	modSuper = xhk.ModWin
)
