package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dictate/audio"
	"dictate/beep"
	"dictate/encoder"
	"dictate/hotkey"
	"dictate/log"
	"dictate/output"
	"dictate/recognizer"
	"dictate/rewrite"
)

// stdoutSink replaces the real typer and clipboard in test mode so the
// driving script can assert on the final text.
type stdoutSink struct{ tag string }

func (s stdoutSink) Type(text string) error {
	fmt.Printf("%s\t%s\n", s.tag, strconv.Quote(text))
	return nil
}

func (s stdoutSink) Write(text string) error {
	fmt.Printf("%s\t%s\n", s.tag, strconv.Quote(text))
	return nil
}

// runTestMode replays a WAV file through the whole pipeline, driven by
// commands on stdin: KEYDOWN, KEYUP, TOGGLE, WAIT, SLEEP <ms>, QUIT.
func runTestMode(wavPath string, client recognizer.Client, rules rewrite.Rules, mode output.Mode) {
	beep.Disable()

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()
	log.SessionStart(client.Name(), string(mode), "test")

	fakeCtx, err := audio.NewFakeContext(wavPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading WAV: %v\n", err)
		os.Exit(1)
	}

	capture, err := fakeCtx.NewCapture(nil, audio.CaptureConfig{
		SampleRate: encoder.SampleRate, Channels: encoder.Channels,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating capture: %v\n", err)
		os.Exit(1)
	}
	defer capture.Close()

	dispatcher := output.NewWith(stdoutSink{tag: "TYPED"}, stdoutSink{tag: "CLIP"}, log.Warnf)

	hooks := Hooks{
		OnRecording: func(on bool) {
			if on {
				fmt.Println("RECORDING")
			} else {
				fmt.Println("STOPPED")
			}
		},
		OnResult: func(text string, noSpeech bool) {
			if noSpeech {
				fmt.Println("NOSPEECH")
			}
		},
		OnError: func(err error) { fmt.Printf("ERROR\t%v\n", err) },
	}

	session := NewSession(capture, client, rules, dispatcher, mode, encoder.NewWav, hooks)
	activeSession = session

	hk := hotkey.NewFake()
	recordingDone := make(chan struct{}, 1)

	// Stdin driver in background -- sends hotkey events, handles WAIT/SLEEP/QUIT
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			cmd := strings.TrimSpace(scanner.Text())
			switch cmd {
			case "KEYDOWN":
				hk.SimKeydown()
			case "KEYUP":
				hk.SimKeyup()
			case "TOGGLE":
				hk.SimTap()
			case "WAIT":
				<-recordingDone
			case "QUIT":
				log.SessionEnd(session.Count())
				os.Exit(0)
			default:
				if strings.HasPrefix(cmd, "SLEEP ") {
					if ms, err := strconv.Atoi(cmd[6:]); err == nil {
						time.Sleep(time.Duration(ms) * time.Millisecond)
					}
				}
			}
		}
		os.Exit(0)
	}()

	toggler := hotkey.NewToggler(hk, hotkey.DefaultLongPress)

	// Event loop -- same pattern as run()
	for {
		<-toggler.Events()
		session.Toggle()
		if session.State() == StateIdle {
			select {
			case recordingDone <- struct{}{}:
			default:
			}
		}
	}
}
