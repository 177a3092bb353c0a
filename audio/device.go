package audio

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Picker key actions decoded from raw stdin bytes.
const (
	keyNone = iota
	keyUp
	keyDown
	keyConfirm
	keyCancel
)

// SelectDevice asks the user to pick a capture device on the terminal.
// With one device there is nothing to ask. Cancelling (q, Esc, Ctrl+C)
// returns nil so the caller falls back to the system default.
func SelectDevice(ctx Context) (*DeviceInfo, error) {
	devices, err := ctx.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}
	switch len(devices) {
	case 0:
		return nil, fmt.Errorf("no capture devices found")
	case 1:
		return &devices[0], nil
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	cursor := 0
	draw := func() {
		fmt.Print("\r\x1b[J")
		fmt.Print("Microphone (↑/↓ move, Enter select, q default):\r\n\r\n")
		for i, d := range devices {
			marker := "   "
			if i == cursor {
				marker = " \x1b[1;36m▶\x1b[0m"
			}
			fmt.Printf("%s \x1b[2m%d.\x1b[0m %s\r\n", marker, i+1, d.Name)
		}
	}
	draw()

	buf := make([]byte, 3)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}

		key := keyNone
		switch {
		case n == 3 && buf[0] == 0x1b && buf[1] == '[' && buf[2] == 'A':
			key = keyUp
		case n == 3 && buf[0] == 0x1b && buf[1] == '[' && buf[2] == 'B':
			key = keyDown
		case n != 1:
		case buf[0] == 'k':
			key = keyUp
		case buf[0] == 'j':
			key = keyDown
		case buf[0] == '\r':
			key = keyConfirm
		case buf[0] == 'q', buf[0] == 0x1b, buf[0] == 3:
			key = keyCancel
		case buf[0] >= '1' && buf[0] <= '9':
			if i := int(buf[0] - '1'); i < len(devices) {
				cursor = i
				key = keyConfirm
			}
		}

		switch key {
		case keyUp:
			if cursor > 0 {
				cursor--
			}
		case keyDown:
			if cursor < len(devices)-1 {
				cursor++
			}
		case keyConfirm:
			fmt.Print("\r\n")
			return &devices[cursor], nil
		case keyCancel:
			fmt.Print("\r\n")
			return nil, nil
		}

		fmt.Printf("\x1b[%dA", len(devices)+2)
		draw()
	}
}
