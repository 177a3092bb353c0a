package recognizer

import (
	"context"
	"sync/atomic"
)

// Fake returns canned results and counts calls; used by the session
// controller tests and the headless test mode.
type Fake struct {
	Text  string
	Err   error
	calls atomic.Int64
}

func NewFake(text string, err error) *Fake {
	return &Fake{Text: text, Err: err}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Calls() int64 { return f.calls.Load() }

func (f *Fake) Transcribe(_ context.Context, _ []byte, _ string) (Result, error) {
	f.calls.Add(1)
	if f.Err != nil {
		return Result{}, f.Err
	}
	return Result{Text: f.Text, NoSpeech: f.Text == ""}, nil
}
