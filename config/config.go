package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the flat runtime configuration loaded from config.json.
// Every key has a built-in default; malformed or unknown values fall back
// to the default for that key instead of failing startup.
type Config struct {
	Hotkey     string `json:"hotkey"`      // modifier+key spec, e.g. "ctrl+shift+d"
	Model      string `json:"model"`       // tiny, base, small, medium, large
	Language   string `json:"language"`    // ISO-639-1 code, "" = auto-detect
	OutputMode string `json:"output_mode"` // type, clipboard, or both
	EngineURL  string `json:"engine_url"`  // OpenAI-compatible transcription endpoint
	Sounds     bool   `json:"sounds"`      // start/stop beeps

	// Replacements overrides the path of replacements.yml. Empty means
	// the file next to config.json.
	Replacements string `json:"replacements,omitempty"`

	// PasteMethod is the legacy name for OutputMode, kept so old config
	// files keep working. It also accepts the old tool names xdotool and
	// xclip.
	PasteMethod string `json:"paste_method,omitempty"`
}

var modelSizes = map[string]bool{
	"tiny": true, "base": true, "small": true, "medium": true, "large": true,
}

func Default() Config {
	return Config{
		Hotkey:     "ctrl+shift+d",
		Model:      "base",
		Language:   "en",
		OutputMode: "type",
		EngineURL:  "http://127.0.0.1:8080/v1/audio/transcriptions",
		Sounds:     true,
	}
}

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "dictate"), nil
}

// Path returns the config file location. An explicit non-empty flagPath wins.
func Path(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file at path. A missing file is created with
// defaults. A malformed file or invalid values yield the defaults for the
// affected keys; the returned warnings describe what was ignored.
func Load(path string) (Config, []string, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := Save(path, cfg); werr != nil {
			return cfg, nil, fmt.Errorf("writing default config: %w", werr)
		}
		return cfg, nil, nil
	}
	if err != nil {
		return cfg, nil, err
	}

	var warnings []string
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), []string{fmt.Sprintf("config unreadable, using defaults: %v", err)}, nil
	}

	return normalize(cfg, &warnings), warnings, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	cfg.PasteMethod = ""
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func normalize(cfg Config, warnings *[]string) Config {
	def := Default()

	if cfg.PasteMethod != "" {
		cfg.OutputMode = cfg.PasteMethod
		cfg.PasteMethod = ""
	}
	switch cfg.OutputMode {
	case "xdotool":
		cfg.OutputMode = "type"
	case "xclip":
		cfg.OutputMode = "clipboard"
	case "type", "clipboard", "both":
	default:
		*warnings = append(*warnings, fmt.Sprintf("unknown output_mode %q, using %q", cfg.OutputMode, def.OutputMode))
		cfg.OutputMode = def.OutputMode
	}

	if !modelSizes[cfg.Model] {
		*warnings = append(*warnings, fmt.Sprintf("unknown model %q, using %q", cfg.Model, def.Model))
		cfg.Model = def.Model
	}

	if cfg.Hotkey == "" {
		cfg.Hotkey = def.Hotkey
	}
	if cfg.EngineURL == "" {
		cfg.EngineURL = def.EngineURL
	}

	return cfg
}

// ReplacementsPath resolves the replacement rules file for cfg loaded from
// configPath.
func ReplacementsPath(cfg Config, configPath string) string {
	if cfg.Replacements != "" {
		return cfg.Replacements
	}
	return filepath.Join(filepath.Dir(configPath), "replacements.yml")
}
