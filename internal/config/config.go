package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/fsmsketch/internal/logging"
	"github.com/aretw0/fsmsketch/pkg/alphabet"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. FSMSKETCH_ALPHABET_SIZE.
const EnvPrefix = "FSMSKETCH_"

// Config holds the settings shared by every command.
type Config struct {
	AlphabetSize  int    `mapstructure:"alphabet_size" yaml:"alphabet_size"`
	StrictSymbols bool   `mapstructure:"strict_symbols" yaml:"strict_symbols"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat     string `mapstructure:"log_format" yaml:"log_format"`
	Listen        string `mapstructure:"listen" yaml:"listen"`
}

// keys lists the settings in file and environment form.
var keys = []string{"alphabet_size", "strict_symbols", "log_level", "log_format", "listen"}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		AlphabetSize:  2,
		StrictSymbols: true,
		LogLevel:      "info",
		LogFormat:     string(logging.FormatText),
		Listen:        ":8080",
	}
}

// Load builds a Config from defaults, then the YAML file at path (if path is
// not empty), then FSMSKETCH_* environment variables.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	raw := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	for _, key := range keys {
		if v, ok := lookup(EnvPrefix + strings.ToUpper(key)); ok {
			raw[key] = v
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	if c.AlphabetSize < 1 || c.AlphabetSize > alphabet.MaxSize {
		return fmt.Errorf("alphabet_size must be in 1..%d, got %d", alphabet.MaxSize, c.AlphabetSize)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	return nil
}
