//go:build !nosystray

// Package tray reflects controller state in a status icon and exposes a
// small menu: record/stop, output mode, and quit.
package tray

import (
	"fmt"
	"sync"

	"fyne.io/systray"
)

var (
	quitCh    = make(chan struct{})
	closeOnce sync.Once

	mu       sync.Mutex
	toggleFn func()
	modeFn   func(string)
	openCfg  func()

	// menu items are built on the systray goroutine; guarded by mu
	mRecord   *systray.MenuItem
	modeItems map[string]*systray.MenuItem
)

var modeOrder = []string{"type", "clipboard", "both"}

var modeLabels = map[string]string{
	"type":      "Type into window",
	"clipboard": "Copy to clipboard",
	"both":      "Type + copy",
}

type Options struct {
	Mode     string // initial output mode
	Model    string
	Language string

	OnToggle func()       // record/stop clicked
	OnMode   func(string) // output mode switched
	OnOpen   func()       // open config clicked
}

// Init starts the tray in the background. The returned channel closes
// when the user picks Quit.
func Init(opts Options) <-chan struct{} {
	mu.Lock()
	toggleFn = opts.OnToggle
	modeFn = opts.OnMode
	openCfg = opts.OnOpen
	mu.Unlock()

	go systray.Run(func() { onReady(opts) }, nil)
	return quitCh
}

func onReady(opts Options) {
	systray.SetIcon(iconIdle)
	systray.SetTitle("")
	systray.SetTooltip("Dictate – press hotkey or click to record")

	record := systray.AddMenuItem("Start Recording", "Toggle recording")
	systray.AddSeparator()

	items := make(map[string]*systray.MenuItem)
	for _, m := range modeOrder {
		item := systray.AddMenuItemCheckbox(modeLabels[m], "Output mode", m == opts.Mode)
		items[m] = item
		go watchMode(m, item)
	}
	mu.Lock()
	mRecord = record
	modeItems = items
	mu.Unlock()
	systray.AddSeparator()

	info := systray.AddMenuItem(fmt.Sprintf("Model: %s", opts.Model), "")
	info.Disable()
	lang := opts.Language
	if lang == "" {
		lang = "auto"
	}
	langItem := systray.AddMenuItem(fmt.Sprintf("Language: %s", lang), "")
	langItem.Disable()
	systray.AddSeparator()

	mOpen := systray.AddMenuItem("Open Config", "Edit config.json")
	mQuit := systray.AddMenuItem("Quit", "Stop the daemon")

	go func() {
		for {
			select {
			case <-record.ClickedCh:
				mu.Lock()
				fn := toggleFn
				mu.Unlock()
				if fn != nil {
					fn()
				}
			case <-mOpen.ClickedCh:
				mu.Lock()
				fn := openCfg
				mu.Unlock()
				if fn != nil {
					fn()
				}
			case <-mQuit.ClickedCh:
				Quit()
				systray.Quit()
				return
			}
		}
	}()
}

func watchMode(mode string, item *systray.MenuItem) {
	for range item.ClickedCh {
		SetMode(mode)
		mu.Lock()
		fn := modeFn
		mu.Unlock()
		if fn != nil {
			fn(mode)
		}
	}
}

// SetRecording switches the icon and menu label.
func SetRecording(on bool) {
	mu.Lock()
	item := mRecord
	mu.Unlock()
	if item == nil {
		return
	}
	if on {
		systray.SetIcon(iconRec)
		item.SetTitle("Stop Recording")
	} else {
		systray.SetIcon(iconIdle)
		item.SetTitle("Start Recording")
	}
}

// SetMode updates the mode checkmarks.
func SetMode(mode string) {
	mu.Lock()
	defer mu.Unlock()
	for m, item := range modeItems {
		if item == nil {
			continue
		}
		if m == mode {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// SetError surfaces an error in the tooltip for a while.
func SetError(msg string) {
	systray.SetTooltip("Dictate – " + msg)
}

func Quit() {
	closeOnce.Do(func() { close(quitCh) })
}
