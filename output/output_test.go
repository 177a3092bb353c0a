package output

import (
	"errors"
	"testing"
)

type fakeTyper struct {
	calls []string
	err   error
}

func (f *fakeTyper) Type(text string) error {
	f.calls = append(f.calls, text)
	return f.err
}

type fakeClip struct {
	calls []string
	err   error
}

func (f *fakeClip) Write(text string) error {
	f.calls = append(f.calls, text)
	return f.err
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"type", ModeType, true},
		{"clipboard", ModeClipboard, true},
		{"both", ModeBoth, true},
		{"xdotool", ModeType, true},
		{"xclip", ModeClipboard, true},
		{"telepathy", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("ParseMode(%q) err = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEmitBoth(t *testing.T) {
	typer := &fakeTyper{}
	clip := &fakeClip{}
	d := NewWith(typer, clip, nil)

	d.Emit("hello", ModeBoth)

	if len(typer.calls) != 1 || typer.calls[0] != "hello" {
		t.Errorf("typer calls = %v, want exactly one", typer.calls)
	}
	if len(clip.calls) != 1 || clip.calls[0] != "hello" {
		t.Errorf("clipboard calls = %v, want exactly one", clip.calls)
	}
}

func TestEmitSingleSinks(t *testing.T) {
	typer := &fakeTyper{}
	clip := &fakeClip{}
	d := NewWith(typer, clip, nil)

	d.Emit("a", ModeType)
	if len(typer.calls) != 1 || len(clip.calls) != 0 {
		t.Errorf("type mode: typer=%v clip=%v", typer.calls, clip.calls)
	}

	d.Emit("b", ModeClipboard)
	if len(typer.calls) != 1 || len(clip.calls) != 1 {
		t.Errorf("clipboard mode: typer=%v clip=%v", typer.calls, clip.calls)
	}
}

func TestEmitEmptyText(t *testing.T) {
	typer := &fakeTyper{}
	clip := &fakeClip{}
	d := NewWith(typer, clip, nil)

	d.Emit("", ModeBoth)
	if len(typer.calls)+len(clip.calls) != 0 {
		t.Error("empty text should not reach any sink")
	}
}

func TestEmitSwallowsFailures(t *testing.T) {
	var warned int
	typer := &fakeTyper{err: errors.New("no focused window")}
	clip := &fakeClip{err: errors.New("clipboard unavailable")}
	d := NewWith(typer, clip, func(string, ...any) { warned++ })

	d.Emit("hello", ModeBoth) // must not panic or abort
	if warned != 2 {
		t.Errorf("warn calls = %d, want 2", warned)
	}
	if len(typer.calls) != 1 {
		t.Error("typing still attempted after clipboard failure")
	}
}
