//go:build windows

package main

import (
	"errors"
	"os"
	"os/signal"
)

func notifyToggle(ch chan os.Signal) {}

func notifyShutdown(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt)
}

func sendToggle(pid int) error {
	return errors.New("signal toggle not supported on windows")
}

func processAlive(pid int) bool {
	_, err := os.FindProcess(pid)
	return err == nil
}
