package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, warnings, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}

func TestLoadMalformedFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, warnings, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
	if len(warnings) == 0 {
		t.Error("expected a warning for malformed config")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"model":"small"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "small" {
		t.Errorf("model = %q, want small", cfg.Model)
	}
	if cfg.Hotkey != Default().Hotkey {
		t.Errorf("hotkey = %q, want default", cfg.Hotkey)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"model":"gigantic","output_mode":"telepathy"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, warnings, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "base" {
		t.Errorf("model = %q, want base", cfg.Model)
	}
	if cfg.OutputMode != "type" {
		t.Errorf("output_mode = %q, want type", cfg.OutputMode)
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %v, want 2 entries", warnings)
	}
}

func TestLegacyPasteMethod(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"xdotool", "type"},
		{"xclip", "clipboard"},
		{"both", "both"},
	}
	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(`{"paste_method":"`+tc.in+`"}`), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, _, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.OutputMode != tc.want {
			t.Errorf("paste_method %q: output_mode = %q, want %q", tc.in, cfg.OutputMode, tc.want)
		}
	}
}

func TestReplacementsPath(t *testing.T) {
	cfg := Default()
	got := ReplacementsPath(cfg, "/home/u/.config/dictate/config.json")
	if !strings.HasSuffix(got, filepath.Join("dictate", "replacements.yml")) {
		t.Errorf("got %q", got)
	}

	cfg.Replacements = "/etc/dictate/rules.yml"
	if got := ReplacementsPath(cfg, "whatever"); got != "/etc/dictate/rules.yml" {
		t.Errorf("got %q", got)
	}
}
