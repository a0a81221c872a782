// Package models defines data structures shared across the pipeline.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProcessConfig holds runtime configuration for process operations.
// All values come from CLI flags; Defaults from an optional config.yaml
// fill in anything the flags left unset.
type ProcessConfig struct {
	URLs        []string
	WorkerCount int
	Language    string
	Deep        bool
}

// Defaults are optional file-based defaults loaded from config.yaml.
type Defaults struct {
	CacheDir    string   `yaml:"cache_dir,omitempty"`
	MaxAge      string   `yaml:"max_age,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	ModelType   string   `yaml:"model_type,omitempty"` // openai | ollama
	OllamaModel string   `yaml:"ollama_model,omitempty"`
	Languages   []string `yaml:"languages,omitempty"` // caption languages, in preference order
	Workers     int      `yaml:"workers,omitempty"`
}

// LoadDefaults reads defaults from a YAML file. A missing file is not an
// error; callers get zero-value defaults.
func LoadDefaults(path string) (*Defaults, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Defaults{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &d, nil
}
