package main

import (
	"context"
	"math"
	"sync"
	"time"

	"dictate/audio"
	"dictate/encoder"
	"dictate/log"
	"dictate/output"
	"dictate/recognizer"
	"dictate/rewrite"
)

type State int

const (
	StateIdle State = iota
	StateRecording
)

// Hooks let the UI layers (tray, notifications, TUI, beeps) observe the
// session without the controller importing them.
type Hooks struct {
	OnRecording func(on bool)
	// OnLevel reports the RMS level of each captured chunk, 0..1.
	OnLevel func(level float64)
	// OnResult fires after a successful round trip; text is the final
	// rewritten text, empty when no speech was detected.
	OnResult func(text string, noSpeech bool)
	OnError  func(err error)
}

// Session owns the record -> recognize -> rewrite -> emit cycle. Toggle
// moves between Idle and Recording; the pipeline after a stop runs on the
// caller's goroutine, so further toggles are not seen until it finishes.
type Session struct {
	capture    audio.CaptureDevice
	client     recognizer.Client
	rules      rewrite.Rules
	out        *output.Dispatcher
	newEncoder func() (encoder.Encoder, error)
	hooks      Hooks

	mu     sync.Mutex
	state  State
	mode   output.Mode
	buf    []byte
	frames uint64
	count  int
}

func NewSession(capture audio.CaptureDevice, client recognizer.Client, rules rewrite.Rules,
	out *output.Dispatcher, mode output.Mode, newEnc func() (encoder.Encoder, error), hooks Hooks) *Session {
	if hooks.OnRecording == nil {
		hooks.OnRecording = func(bool) {}
	}
	if hooks.OnLevel == nil {
		hooks.OnLevel = func(float64) {}
	}
	if hooks.OnResult == nil {
		hooks.OnResult = func(string, bool) {}
	}
	if hooks.OnError == nil {
		hooks.OnError = func(error) {}
	}
	return &Session{
		capture:    capture,
		client:     client,
		rules:      rules,
		out:        out,
		mode:       mode,
		newEncoder: newEnc,
		hooks:      hooks,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetMode switches the output sink for subsequent transcriptions.
func (s *Session) SetMode(mode output.Mode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

// Count returns the number of completed transcriptions.
func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Toggle flips the session state. Starting begins capture; stopping ends
// capture and, if enough audio accumulated, runs the pipeline before
// returning.
func (s *Session) Toggle() {
	s.mu.Lock()
	if s.state == StateIdle {
		s.buf = s.buf[:0]
		s.frames = 0
		s.state = StateRecording
		s.mu.Unlock()
		s.start()
		return
	}
	s.state = StateIdle
	s.mu.Unlock()

	// Stop without the lock held: in-flight callbacks take s.mu, see
	// Idle, and drop their data.
	s.capture.Stop()
	s.capture.ClearCallback()
	log.Info("recording_stop")

	s.mu.Lock()
	pcm := make([]byte, len(s.buf))
	copy(pcm, s.buf)
	frames := s.frames
	s.mu.Unlock()

	s.hooks.OnRecording(false)
	if frames < uint64(encoder.SampleRate/10) {
		// Too short to contain speech; drop without bothering the engine.
		log.Infof("recording discarded: %d frames", frames)
		return
	}
	s.pipeline(pcm, frames)
}

// start runs without the lock: capture backends may deliver data
// synchronously from Start, and the callback takes s.mu.
func (s *Session) start() {
	s.capture.SetCallback(func(data []byte, frameCount uint32) {
		s.mu.Lock()
		recording := s.state == StateRecording
		if recording {
			s.buf = append(s.buf, data...)
			s.frames += uint64(frameCount)
		}
		s.mu.Unlock()
		if recording && len(data) > 1 {
			s.hooks.OnLevel(rmsLevel(data))
		}
	})
	if err := s.capture.Start(); err != nil {
		s.capture.ClearCallback()
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
		log.Errorf("capture start: %v", err)
		s.hooks.OnError(err)
		return
	}
	log.Info("recording_start: " + s.capture.DeviceName())
	s.hooks.OnRecording(true)
}

// rmsLevel normalizes a chunk of s16le PCM to a 0..1 loudness figure.
func rmsLevel(data []byte) float64 {
	var sumSquares float64
	n := len(data) / 2
	for i := 0; i+1 < len(data); i += 2 {
		sample := int16(uint16(data[i]) | uint16(data[i+1])<<8)
		normalized := float64(sample) / 32768.0
		sumSquares += normalized * normalized
	}
	return math.Sqrt(sumSquares / float64(n))
}

func (s *Session) pipeline(pcm []byte, frames uint64) {
	start := time.Now()

	upload, format, err := encoder.Encode(s.newEncoder, pcm)
	if err != nil {
		log.Errorf("encode: %v", err)
		s.hooks.OnError(err)
		return
	}

	res, err := s.client.Transcribe(context.Background(), upload, format)
	if err != nil {
		log.Errorf("transcribe: %v", err)
		s.hooks.OnError(err)
		return
	}

	audioS := float64(frames) / float64(encoder.SampleRate)
	log.Recognition(s.client.Name(), format, audioS, float64(time.Since(start).Milliseconds()), res.NoSpeech)

	if res.NoSpeech {
		s.hooks.OnResult("", true)
		return
	}

	text := s.rules.Apply(res.Text)

	s.mu.Lock()
	mode := s.mode
	s.count++
	s.mu.Unlock()

	s.out.Emit(text, mode)
	log.TranscriptText(text)
	s.hooks.OnResult(text, false)
}
