package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/wavarray"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var errInvalidOutput = errors.New("invalid output format")

// Config holds the settings of a wavarray run. Values are layered: defaults,
// then the optional YAML file, then LOG_LEVEL, then explicit flags.
type Config struct {
	// PreviewLen is the amount of values printed, <= 0 prints everything.
	PreviewLen int `yaml:"preview_len"`
	// Output is either "text" or "json".
	Output string `yaml:"output"`
	// Raw prints the decoded integers instead of the normalized values.
	Raw      bool   `yaml:"raw"`
	LogLevel string `yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		PreviewLen: wavarray.DefaultPreviewLen,
		Output:     outputText,
		LogLevel:   "info",
	}
}

// loadConfig reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c Config) validate() error {
	switch strings.ToLower(c.Output) {
	case outputText, outputJSON:
	default:
		return fmt.Errorf("%w: %q", errInvalidOutput, c.Output)
	}

	_, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	return nil
}
