package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"llamagate/pkg/types"
)

// GenerationDefaults are the client-side generation parameters applied to
// every turn unless overridden interactively.
type GenerationDefaults struct {
	Temperature float64 `json:"temperature" yaml:"temperature" toml:"temperature"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`
}

// ClientConfig holds settings for the interactive chat client. Zero values
// are replaced by defaults in ApplyDefaults.
type ClientConfig struct {
	ServiceURL          string             `json:"service_url" yaml:"service_url" toml:"service_url"`
	RequestTimeoutSecs  int                `json:"request_timeout" yaml:"request_timeout" toml:"request_timeout"`
	Generation          GenerationDefaults `json:"generation_params" yaml:"generation_params" toml:"generation_params"`
	DefaultSystemPrompt string             `json:"default_system_prompt" yaml:"default_system_prompt" toml:"default_system_prompt"`
	LogLevel            string             `json:"client_log_level" yaml:"client_log_level" toml:"client_log_level"`
}

// ApplyDefaults fills unset fields with the documented defaults.
func (c *ClientConfig) ApplyDefaults() {
	if c.ServiceURL == "" {
		c.ServiceURL = "http://localhost:8000/v1/chat/completions"
	}
	if c.RequestTimeoutSecs <= 0 {
		c.RequestTimeoutSecs = 120
	}
	if c.Generation.Temperature == 0 {
		c.Generation.Temperature = types.DefaultTemperature
	}
	if c.Generation.MaxTokens <= 0 {
		c.Generation.MaxTokens = types.DefaultMaxTokens
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate rejects values the client cannot run with.
func (c ClientConfig) Validate() error {
	if !strings.HasPrefix(c.ServiceURL, "http://") && !strings.HasPrefix(c.ServiceURL, "https://") {
		return fmt.Errorf("service_url must be an http(s) URL, got %q", c.ServiceURL)
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return fmt.Errorf("generation_params.temperature must be in [0,2], got %v", c.Generation.Temperature)
	}
	return nil
}

// notFoundError distinguishes a missing config file from a malformed one.
type notFoundError struct{ path string }

func (e notFoundError) Error() string { return "config file not found: " + e.path }

// IsNotFound reports whether err indicates a missing config file.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// LoadClient reads a client configuration file based on its extension.
// Supports .yaml/.yml, .json and .toml. An empty file yields the defaults.
func LoadClient(path string) (ClientConfig, error) {
	var cfg ClientConfig
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	if !FileExists(p) {
		return cfg, notFoundError{path: p}
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml %s: %w", p, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse json %s: %w", p, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse toml %s: %w", p, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
