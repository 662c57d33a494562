package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load reads and parses a JSON config file, applies environment overrides,
// validates the result, and returns it. Unknown keys are treated as fatal
// errors — silently ignoring a typo in a config file leads to hard-to-debug
// behavior.
//
// A .env file in the working directory is loaded first (if present) so that
// credential overrides like SPUPLOAD_CLIENT_SECRET can be kept out of the
// config file.
func Load(path string) (*Config, error) {
	// Missing .env is fine; only report real read/parse failures.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// parse decodes the JSON document and unwraps the top-level key. The document
// shape is checked in two steps so that a forgotten "sharePoint" wrapper is
// reported as exactly that, not as an unknown-field error on the first setting.
func parse(data []byte) (*Config, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}

	raw, ok := top["sharePoint"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, errors.New(`missing top-level "sharePoint" object`)
	}

	for key := range top {
		if key != "sharePoint" {
			return nil, fmt.Errorf("unknown top-level key %q", key)
		}
	}

	var cfg Config

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
