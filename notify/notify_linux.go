//go:build linux

package notify

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

var (
	mu     sync.Mutex
	conn   *dbus.Conn
	lastID uint32
)

// send talks to org.freedesktop.Notifications directly. Reusing the
// previous notification ID makes successive status toasts replace each
// other instead of stacking.
func send(summary, body string) {
	mu.Lock()
	defer mu.Unlock()

	if conn == nil {
		c, err := dbus.SessionBus()
		if err != nil {
			return
		}
		conn = c
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		appName,            // app_name
		lastID,             // replaces_id
		"",                 // app_icon
		summary,            // summary
		body,               // body
		[]string{},         // actions
		map[string]dbus.Variant{}, // hints
		int32(timeoutMs),   // expire_timeout
	)
	if call.Err != nil {
		return
	}
	call.Store(&lastID)
}
