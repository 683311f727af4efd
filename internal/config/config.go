// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"maps"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// ErrInvalidValue marks configuration values that fail validation.
var ErrInvalidValue = errors.New("invalid value")

// Config holds the settings for a single automation run.
// It is built once per invocation and handed around by value; nothing
// mutates it after the CLI has applied its flags.
type Config struct {
	// Verbose, DryRun and Debug come from CLI flags, never from the config file.
	Verbose bool `mapstructure:"-" yaml:"-"`
	DryRun  bool `mapstructure:"-" yaml:"-"`
	Debug   bool `mapstructure:"-" yaml:"-"`

	OutputDir  string         `mapstructure:"output_dir" yaml:"output_dir"`
	Difficulty string         `mapstructure:"difficulty" yaml:"difficulty"`
	Rounds     int            `mapstructure:"rounds" yaml:"rounds"`
	Extra      map[string]any `mapstructure:"extra" yaml:"extra"`

	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// Flags carries the values the root command parses from the command line.
type Flags struct {
	Verbose bool
	DryRun  bool
	Debug   bool
}

// ApplyFlags returns a copy of c with the command-line flags set.
func (c Config) ApplyFlags(f Flags) Config {
	c.Verbose = f.Verbose
	c.DryRun = f.DryRun
	c.Debug = f.Debug
	c.Extra = maps.Clone(c.Extra)
	if c.Extra == nil {
		c.Extra = map[string]any{}
	}
	return c
}

// DebugLogging reports whether the flags ask for debug-level output.
func (c Config) DebugLogging() bool {
	return c.Debug || c.Verbose
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	if cfg.Extra == nil {
		cfg.Extra = map[string]any{}
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Run --
	v.SetDefault("output_dir", "./output")
	v.SetDefault("difficulty", "medium")
	v.SetDefault("rounds", 3)
	v.SetDefault("extra", map[string]any{})

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "env-sync")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.Extra == nil {
		cfg.Extra = map[string]any{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("%w: rounds must be a positive integer", ErrInvalidValue)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidValue)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the logger configuration.
func (l *LoggerConfig) Validate() error {
	switch l.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logger.format must be 'console' or 'json', got %q", ErrInvalidValue, l.Format)
	}
	if _, err := zapcore.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("%w: logger.level %q is not a known level", ErrInvalidValue, l.Level)
	}
	if l.LogFile != "" && l.MaxSize <= 0 {
		return fmt.Errorf("%w: logger.max_size must be a positive integer when log_file is set", ErrInvalidValue)
	}
	return nil
}
