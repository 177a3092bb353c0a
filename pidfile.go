package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// The pid file lets a second invocation find the running daemon, both to
// refuse a duplicate start and to deliver the toggle signal.

func pidPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "dictate.pid")
	}
	return filepath.Join(os.TempDir(), "dictate.pid")
}

// readPid returns the pid recorded at path, or 0 when the file is
// missing or unreadable.
func readPid(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0
	}
	return pid
}

// writePidFile records our pid at path. A file naming a live process
// means another daemon owns the hotkey; a stale file is overwritten.
func writePidFile(path string) error {
	if pid := readPid(path); pid != 0 && pid != os.Getpid() && processAlive(pid) {
		return fmt.Errorf("already running (pid %d)", pid)
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0644)
}

func removePidFile(path string) {
	if readPid(path) == os.Getpid() {
		os.Remove(path)
	}
}
