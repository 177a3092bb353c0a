// Package recognizer sends captured audio to an external speech-to-text
// engine and returns plain text. The engine is an HTTP service speaking
// the OpenAI audio/transcriptions protocol; a local whisper server is the
// default, hosted providers work by pointing engine_url at them.
package recognizer

import (
	"context"
	"fmt"
)

type Result struct {
	Text     string
	NoSpeech bool    // transcription came back empty
	Duration float64 // audio length reported by the engine, seconds
}

type Client interface {
	Name() string
	// Transcribe blocks until the engine answers. audio is a finished
	// container (flac or wav); format is its name.
	Transcribe(ctx context.Context, audio []byte, format string) (Result, error)
}

type Config struct {
	URL      string // transcription endpoint
	APIKey   string // bearer token, empty for local engines
	Model    string // engine model identifier (tiny..large for whisper)
	Language string // ISO-639-1 code, empty = auto-detect
}

func New(cfg Config) (Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("recognizer: engine URL not configured")
	}
	return newWhisper(cfg), nil
}
