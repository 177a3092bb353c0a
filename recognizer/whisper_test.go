package recognizer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranscribe(t *testing.T) {
	var gotModel, gotLang, gotAuth, gotFilename string
	var gotAudio []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotLang = r.FormValue("language")
		gotAuth = r.Header.Get("Authorization")

		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			gotFilename = hdr.Filename
			gotAudio, _ = io.ReadAll(f)
			f.Close()
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":" hello world ","duration":1.5}`))
	}))
	defer srv.Close()

	c, err := New(Config{URL: srv.URL, APIKey: "secret", Model: "base", Language: "en"})
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.Transcribe(context.Background(), []byte("fLaC...."), "flac")
	if err != nil {
		t.Fatal(err)
	}

	if res.Text != "hello world" {
		t.Errorf("text = %q, want trimmed %q", res.Text, "hello world")
	}
	if res.NoSpeech {
		t.Error("NoSpeech = true for non-empty text")
	}
	if res.Duration != 1.5 {
		t.Errorf("duration = %v", res.Duration)
	}
	if gotModel != "base" || gotLang != "en" {
		t.Errorf("form fields model=%q language=%q", gotModel, gotLang)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotFilename != "audio.flac" {
		t.Errorf("filename = %q", gotFilename)
	}
	if string(gotAudio) != "fLaC...." {
		t.Errorf("audio payload = %q", gotAudio)
	}
}

func TestTranscribeNoSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"  "}`))
	}))
	defer srv.Close()

	c := newWhisper(Config{URL: srv.URL, Model: "base"})
	res, err := c.Transcribe(context.Background(), []byte("x"), "wav")
	if err != nil {
		t.Fatal(err)
	}
	if !res.NoSpeech {
		t.Error("expected NoSpeech for blank transcription")
	}
}

func TestTranscribeEngineError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newWhisper(Config{URL: srv.URL, Model: "base"})
	if _, err := c.Transcribe(context.Background(), []byte("x"), "wav"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestTranscribeNoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"text":"ok"}`))
	}))
	defer srv.Close()

	c := newWhisper(Config{URL: srv.URL, Model: "tiny"})
	if _, err := c.Transcribe(context.Background(), []byte("x"), "wav"); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("unexpected auth header %q for keyless engine", gotAuth)
	}
}

func TestNewRequiresURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty URL")
	}
}
