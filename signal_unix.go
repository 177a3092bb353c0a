//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// SIGUSR1 is the external toggle: `dictate toggle` or any script can
// flip recording on the running daemon.

func notifyToggle(ch chan os.Signal) {
	signal.Notify(ch, syscall.SIGUSR1)
}

func notifyShutdown(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
}

func sendToggle(pid int) error {
	return syscall.Kill(pid, syscall.SIGUSR1)
}

func processAlive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
