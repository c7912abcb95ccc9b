// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration that is not tied to a single
// invocation's positional arguments.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
	Number NumberConfig `mapstructure:"number" yaml:"number"`
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

// RenderConfig controls how line numbers are laid out.
type RenderConfig struct {
	// Width is the minimum width the line number is right-justified in.
	Width int `mapstructure:"width" yaml:"width"`
	// Separator is written between the line number and the line content.
	Separator string `mapstructure:"separator" yaml:"separator"`
}

// NumberConfig selects the numbering policy. The CLI flags -n and -b are
// bound to these keys, so they can also come from the config file or env.
type NumberConfig struct {
	All      bool `mapstructure:"all" yaml:"all"`
	Nonblank bool `mapstructure:"nonblank" yaml:"nonblank"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	// stdout carries the concatenated data, so the console logger stays quiet
	// unless asked otherwise.
	v.SetDefault("logger.level", "error")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "catr")
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

	// -- Render --
	v.SetDefault("render.width", 6)
	v.SetDefault("render.separator", "\t")

	// -- Number --
	v.SetDefault("number.all", false)
	v.SetDefault("number.nonblank", false)
}

// NewConfigFromViper creates a new, validated configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger configuration invalid: %w", err)
	}
	if err := c.Render.Validate(); err != nil {
		return fmt.Errorf("render configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the logger settings.
func (l *LoggerConfig) Validate() error {
	switch strings.ToLower(l.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("format must be 'console' or 'json', got %q", l.Format)
	}
	if l.LogFile != "" && l.MaxSize <= 0 {
		return fmt.Errorf("max_size must be a positive integer when log_file is set")
	}
	return nil
}

// Validate checks the render settings.
func (r *RenderConfig) Validate() error {
	if r.Width < 1 {
		return fmt.Errorf("width must be a positive integer")
	}
	if r.Separator == "" {
		return fmt.Errorf("separator must not be empty")
	}
	return nil
}
