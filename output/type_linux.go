//go:build linux

package output

import (
	"encoding/binary"
	"errors"
	"os"
	"sync"
	"syscall"
	"time"
)

// ioctl constants from linux/uinput.h
const (
	uiSetEvbit  = 0x40045564 // UI_SET_EVBIT
	uiSetKeybit = 0x40045565 // UI_SET_KEYBIT
	uiDevCreate = 0x5501     // UI_DEV_CREATE
)

// input event types from linux/input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
)

const busUSB = 0x03

type inputEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type uinputUserDev struct {
	Name         [80]byte
	ID           inputID
	FfEffectsMax uint32
	Absmax       [64]int32
	Absmin       [64]int32
	Absfuzz      [64]int32
	Absflat      [64]int32
}

// uinputTyper registers a virtual keyboard with the kernel and types text
// by writing key events to it. Works on both X11 and Wayland, but needs
// write access to /dev/uinput.
type uinputTyper struct {
	mu  sync.Mutex
	fd  *os.File
	err error
	set bool
}

func newTyper() Typer {
	return &uinputTyper{}
}

func (u *uinputTyper) init() error {
	if u.set {
		return u.err
	}
	u.set = true

	path := "/dev/uinput"
	if _, err := os.Stat(path); err != nil {
		path = "/dev/input/uinput"
		if _, err := os.Stat(path); err != nil {
			u.err = errors.New("uinput device not found, try: sudo modprobe uinput")
			return u.err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, os.ModeDevice)
	if err != nil {
		u.err = err
		return u.err
	}
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiSetEvbit, evKey); errno != 0 {
		u.err = errno
		f.Close()
		return u.err
	}
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiSetEvbit, evSyn); errno != 0 {
		u.err = errno
		f.Close()
		return u.err
	}
	// Register all standard keys so udev classifies this as a keyboard
	for i := uintptr(0); i < 256; i++ {
		if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiSetKeybit, i); errno != 0 {
			u.err = errno
			f.Close()
			return u.err
		}
	}
	dev := uinputUserDev{}
	copy(dev.Name[:], "dictate-kbd")
	dev.ID.Bustype = busUSB
	dev.ID.Vendor = 0x1234
	dev.ID.Product = 0x5679
	dev.ID.Version = 1
	if err := binary.Write(f, binary.LittleEndian, &dev); err != nil {
		u.err = err
		f.Close()
		return u.err
	}
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uiDevCreate, 0); errno != 0 {
		u.err = errno
		f.Close()
		return u.err
	}
	u.fd = f
	// Give the compositor time to recognize the new input device
	time.Sleep(200 * time.Millisecond)
	return nil
}

func (u *uinputTyper) writeEvent(typ, code uint16, value int32) error {
	ev := inputEvent{Type: typ, Code: code, Value: value}
	return binary.Write(u.fd, binary.LittleEndian, &ev)
}

func (u *uinputTyper) syn() error {
	return u.writeEvent(evSyn, 0, 0)
}

func (u *uinputTyper) keyTap(code uint16, shift bool) error {
	if shift {
		if err := u.writeEvent(evKey, keyLeftShift, 1); err != nil {
			return err
		}
		if err := u.syn(); err != nil {
			return err
		}
	}
	if err := u.writeEvent(evKey, code, 1); err != nil {
		return err
	}
	if err := u.syn(); err != nil {
		return err
	}
	if err := u.writeEvent(evKey, code, 0); err != nil {
		return err
	}
	if err := u.syn(); err != nil {
		return err
	}
	if shift {
		if err := u.writeEvent(evKey, keyLeftShift, 0); err != nil {
			return err
		}
		if err := u.syn(); err != nil {
			return err
		}
	}
	return nil
}

// Type sends each character of text as a keystroke. Newlines become
// Enter presses; characters without a keycode mapping are skipped.
func (u *uinputTyper) Type(text string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := u.init(); err != nil {
		return err
	}
	for i := 0; i < len(text); i++ {
		code, shift, ok := charToKey(text[i])
		if !ok {
			continue
		}
		if err := u.keyTap(code, shift); err != nil {
			return err
		}
	}
	return nil
}
