// Package notify shows transient desktop notifications. Delivery is
// best-effort: a missing notification daemon is not an error anyone can
// act on, so failures are swallowed.
package notify

const appName = "Dictate"

// timeout in milliseconds, matching the short toast style of the tray.
const timeoutMs = 2000

// Send shows (or replaces) the app's status notification.
func Send(summary, body string) {
	send(summary, body)
}
