// Package config provides easy-play configuration loading from YAML files
// and the environment.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables overriding the config.
const EnvPrefix = "EASY_PLAY_"

// Config represents the easy-play configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Player PlayerConfig `yaml:"player"`
	Gst    GstConfig    `yaml:"gst"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn warning error"`
	Output string `yaml:"output" default:"stdout" validate:"required"`
}

// PlayerConfig represents player behavior configuration.
type PlayerConfig struct {
	Quiet           bool   `yaml:"quiet"`
	Interactive     bool   `yaml:"interactive"`
	HandleInterrupt *bool  `yaml:"handle_interrupt" default:"true"`
	Prompt          string `yaml:"prompt" default:"easy-play> "`
}

// GstConfig represents settings forwarded to GStreamer.
type GstConfig struct {
	Debug string `yaml:"debug"`
}

// Overrides holds the values that may be set from the environment.
// Keys are the variable names without EnvPrefix, lowercased.
type Overrides struct {
	LogLevel        *string `mapstructure:"log_level"`
	LogOutput       *string `mapstructure:"log_output"`
	Quiet           *bool   `mapstructure:"quiet"`
	Interactive     *bool   `mapstructure:"interactive"`
	HandleInterrupt *bool   `mapstructure:"handle_interrupt"`
	Prompt          *string `mapstructure:"prompt"`
	GstDebug        *string `mapstructure:"gst_debug"`
}

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	return &cfg, nil
}

// Load loads configuration from a YAML file. A missing file is not an error
// when optional is set; defaults are used instead.
// Environment variables take precedence over file values.
func Load(path string, optional bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case optional && os.IsNotExist(err):
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	if err := cfg.ApplyEnv(os.Environ()); err != nil {
		return nil, err
	}

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// ApplyEnv overrides config values with EASY_PLAY_* variables from environ
// ("KEY=value" pairs, as returned by os.Environ).
func (c *Config) ApplyEnv(environ []string) error {
	settings := make(map[string]any)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		settings[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
	}
	if len(settings) == 0 {
		return nil
	}

	var o Overrides
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &o,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "failed to decode environment overrides")
	}

	c.Apply(o)
	return nil
}

// Apply copies every set override into the config.
func (c *Config) Apply(o Overrides) {
	if o.LogLevel != nil {
		c.Log.Level = *o.LogLevel
	}
	if o.LogOutput != nil {
		c.Log.Output = *o.LogOutput
	}
	if o.Quiet != nil {
		c.Player.Quiet = *o.Quiet
	}
	if o.Interactive != nil {
		c.Player.Interactive = *o.Interactive
	}
	if o.HandleInterrupt != nil {
		c.Player.HandleInterrupt = o.HandleInterrupt
	}
	if o.Prompt != nil {
		c.Player.Prompt = *o.Prompt
	}
	if o.GstDebug != nil {
		c.Gst.Debug = *o.GstDebug
	}
}

// InterruptEnabled returns true if a SIGINT handler should be installed.
func (c *Config) InterruptEnabled() bool {
	return c.Player.HandleInterrupt == nil || *c.Player.HandleInterrupt
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
