//go:build nosystray

package tray

import "sync"

// Headless build for environments without a status-notifier host (CI,
// the -test harness).

var (
	quitCh    = make(chan struct{})
	closeOnce sync.Once
)

type Options struct {
	Mode     string
	Model    string
	Language string

	OnToggle func()
	OnMode   func(string)
	OnOpen   func()
}

func Init(opts Options) <-chan struct{} { return quitCh }
func SetRecording(bool)                 {}
func SetMode(string)                    {}
func SetError(string)                   {}

func Quit() {
	closeOnce.Do(func() { close(quitCh) })
}
