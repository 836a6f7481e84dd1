// File: internal/config/config.go
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Format FormatConfig `mapstructure:"format" yaml:"format"`
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

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// FormatConfig holds every knob the formatting engine understands.
//
// The three element lists assign layout behaviors to tag names. A tag name may
// appear in at most one list; unlisted tags fall back to DefaultBehavior.
type FormatConfig struct {
	// Indentation is the number of spaces per nesting level.
	Indentation int `mapstructure:"indentation" yaml:"indentation"`
	// MaxLineLength is the wrap limit. Zero or negative disables wrapping.
	MaxLineLength int `mapstructure:"max_line_length" yaml:"max_line_length"`
	// DefaultBehavior is one of "container", "semicontainer" or "inline".
	DefaultBehavior string `mapstructure:"default_behavior" yaml:"default_behavior"`

	ContainerElements     []string `mapstructure:"container_elements" yaml:"container_elements"`
	SemicontainerElements []string `mapstructure:"semicontainer_elements" yaml:"semicontainer_elements"`
	InlineElements        []string `mapstructure:"inline_elements" yaml:"inline_elements"`

	SortedAttributes bool `mapstructure:"sorted_attributes" yaml:"sorted_attributes"`

	CommentsStartNewLines           bool `mapstructure:"comments_start_new_lines" yaml:"comments_start_new_lines"`
	CommentsHaveTrailingSpaces      bool `mapstructure:"comments_have_trailing_spaces" yaml:"comments_have_trailing_spaces"`
	PIsStartNewLines                bool `mapstructure:"pis_start_new_lines" yaml:"pis_start_new_lines"`
	DoctypeStartsNewLine            bool `mapstructure:"doctype_starts_new_line" yaml:"doctype_starts_new_line"`
	DoctypeSubsetPartsStartNewLines bool `mapstructure:"doctype_subset_parts_start_new_lines" yaml:"doctype_subset_parts_start_new_lines"`

	// Concurrency bounds how many input files are formatted in parallel.
	// Each file is still rendered by a single goroutine.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// behaviorNames are the accepted values for format.default_behavior.
var behaviorNames = map[string]bool{
	"container":     true,
	"semicontainer": true,
	"inline":        true,
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "xmlfmt")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Format --
	v.SetDefault("format.indentation", 4)
	v.SetDefault("format.max_line_length", 120)
	v.SetDefault("format.default_behavior", "container")
	v.SetDefault("format.container_elements", []string{})
	v.SetDefault("format.semicontainer_elements", []string{})
	v.SetDefault("format.inline_elements", []string{})
	v.SetDefault("format.sorted_attributes", false)
	v.SetDefault("format.comments_start_new_lines", true)
	v.SetDefault("format.comments_have_trailing_spaces", true)
	v.SetDefault("format.pis_start_new_lines", true)
	v.SetDefault("format.doctype_starts_new_line", true)
	v.SetDefault("format.doctype_subset_parts_start_new_lines", true)
	v.SetDefault("format.concurrency", runtime.NumCPU())
}

// NewConfigFromViper creates a new configuration instance from a viper object.
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

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.Format.Validate(); err != nil {
		return fmt.Errorf("format configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the formatting configuration. Rendering never starts with an
// invalid configuration, so no partial output can be produced.
func (f *FormatConfig) Validate() error {
	if f.Indentation < 0 {
		return fmt.Errorf("format.indentation must not be negative")
	}
	if !behaviorNames[strings.ToLower(f.DefaultBehavior)] {
		return fmt.Errorf("format.default_behavior must be one of container, semicontainer, inline (got %q)", f.DefaultBehavior)
	}
	if f.Concurrency <= 0 {
		return fmt.Errorf("format.concurrency must be a positive integer")
	}

	// A tag name assigned to two behaviors would make classification ambiguous.
	seen := make(map[string]string)
	lists := []struct {
		name string
		tags []string
	}{
		{"container_elements", f.ContainerElements},
		{"semicontainer_elements", f.SemicontainerElements},
		{"inline_elements", f.InlineElements},
	}
	for _, l := range lists {
		for _, tag := range l.tags {
			if tag == "" {
				return fmt.Errorf("format.%s contains an empty tag name", l.name)
			}
			if prev, ok := seen[tag]; ok && prev != l.name {
				return fmt.Errorf("tag %q is listed in both format.%s and format.%s", tag, prev, l.name)
			}
			seen[tag] = l.name
		}
	}
	return nil
}
