package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EscapeFile is the config file name looked up in the search directories.
const EscapeFile = "escape.yaml"

// LoadEscape loads and validates the runner configuration.
// Search order: customPath -> ~/.escape/configs/escape.yaml -> ./configs/escape.yaml -> embedded default.
// Files are decoded over the built-in defaults, so a file may override a single section.
func LoadEscape(customPath string) (EscapeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return EscapeConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return EscapeConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(EscapeFile), filepath.Join("configs", EscapeFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := Parse(data)
		if err != nil {
			return EscapeConfig{}, fmt.Errorf("config: %s: %w", path, err)
		}
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultEscapeYAML)
	if err != nil {
		cfg = DefaultEscapeConfig() // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (EscapeConfig, error) {
	cfg := DefaultEscapeConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return EscapeConfig{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return EscapeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".escape", "configs", filename)
}
