package main

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestWritePidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictate.pid")

	if err := writePidFile(path); err != nil {
		t.Fatalf("writePidFile: %v", err)
	}
	if got := readPid(path); got != os.Getpid() {
		t.Fatalf("readPid = %d, want %d", got, os.Getpid())
	}
}

func TestWritePidFileRefusesLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictate.pid")

	// Our parent is certainly alive.
	ppid := os.Getppid()
	if ppid <= 1 {
		t.Skip("no usable parent pid")
	}
	os.WriteFile(path, []byte(strconv.Itoa(ppid)+"\n"), 0644)

	if err := writePidFile(path); err == nil {
		t.Fatal("writePidFile accepted a pid file naming a live process")
	}
}

func TestWritePidFileReplacesStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictate.pid")

	// Pid from far beyond pid_max; guaranteed dead.
	os.WriteFile(path, []byte("999999999\n"), 0644)

	if err := writePidFile(path); err != nil {
		t.Fatalf("writePidFile did not replace stale file: %v", err)
	}
	if got := readPid(path); got != os.Getpid() {
		t.Fatalf("readPid = %d, want %d", got, os.Getpid())
	}
}

func TestReadPidGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictate.pid")
	os.WriteFile(path, []byte("not a pid\n"), 0644)
	if got := readPid(path); got != 0 {
		t.Fatalf("readPid = %d, want 0", got)
	}
	if got := readPid(filepath.Join(t.TempDir(), "missing")); got != 0 {
		t.Fatalf("readPid missing file = %d, want 0", got)
	}
}

func TestRemovePidFileOnlyOwn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictate.pid")

	os.WriteFile(path, []byte("999999999\n"), 0644)
	removePidFile(path)
	if _, err := os.Stat(path); err != nil {
		t.Fatal("removePidFile deleted a file owned by another process")
	}

	if err := writePidFile(path); err != nil {
		t.Fatalf("writePidFile: %v", err)
	}
	removePidFile(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("removePidFile left our own file behind")
	}
}
