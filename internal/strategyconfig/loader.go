package strategyconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file and validates it. Strict decoding: unknown
// or misspelled fields fail immediately instead of silently defaulting.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode strategy config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate strategy config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads the file when path is non-empty, otherwise returns the
// built-in defaults (already valid by construction, still validated here to
// keep both paths honest).
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("built-in strategy config invalid: %w", err)
		}
		return cfg, nil
	}
	return Load(path)
}

// Hash generates a SHA-256 hash of the config from its canonical JSON form.
// Analysis runs record it so results can be tied to the exact parameter set.
func Hash(cfg *Config) (string, error) {
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
