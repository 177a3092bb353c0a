//go:build !linux && !darwin

package notify

func send(summary, body string) {}
