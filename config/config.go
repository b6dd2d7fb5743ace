// Package config provides configuration loading and management for cimrdfs2linkml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	semconfig "github.com/c360studio/semstreams/config"
	"gopkg.in/yaml.v3"
)

// Config represents the complete converter configuration
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Schema  SchemaConfig  `yaml:"schema"`
	Watch   WatchConfig   `yaml:"watch"`
	Metrics MetricsConfig `yaml:"metrics"`
	Publish PublishConfig `yaml:"publish"`
}

// ConvertConfig configures how profiles are read and where schemas go
type ConvertConfig struct {
	// BaseIRI resolves fragment identifiers such as "#ACLineSegment"
	BaseIRI string `yaml:"base_iri"`
	// Output is the schema path used when none is given (default: out.yaml)
	Output string `yaml:"output"`
	// OutDir is the batch output directory
	OutDir string `yaml:"out_dir"`
	// Language is the preferred xml:lang of labels and comments
	Language string `yaml:"language"`
}

// SchemaConfig configures the schema-level values of generated documents
type SchemaConfig struct {
	DefaultRange    string   `yaml:"default_range"`
	Imports         []string `yaml:"imports"`
	DefaultCURIMaps []string `yaml:"default_curi_maps"`
	LinkMLPrefix    string   `yaml:"linkml_prefix"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is how long to wait for writes to settle before converting
	Debounce time.Duration `yaml:"debounce"`
}

// MetricsConfig configures conversion metrics
type MetricsConfig struct {
	// Textfile is written in Prometheus text format on exit (empty = disabled)
	Textfile string `yaml:"textfile"`
}

// PublishConfig configures publishing schemas to a NATS KV bucket
type PublishConfig struct {
	// NATSURL is the server to publish to (empty = disabled)
	NATSURL string `yaml:"nats_url"`
	// Bucket is the key-value bucket holding the schemas
	Bucket string `yaml:"bucket"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			BaseIRI:  "http://iec.ch/TC57/CIM100",
			Output:   "out.yaml",
			OutDir:   ".",
			Language: "en",
		},
		Schema: SchemaConfig{
			DefaultRange:    "string",
			Imports:         []string{"linkml:types"},
			DefaultCURIMaps: []string{"semweb_context"},
			LinkMLPrefix:    "https://w3id.org/linkml/",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Metrics: MetricsConfig{
			Textfile: "", // Disabled
		},
		Publish: PublishConfig{
			NATSURL: "", // Disabled
			Bucket:  "CIM_LINKML_SCHEMAS",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Convert.BaseIRI == "" {
		return fmt.Errorf("convert.base_iri is required")
	}
	if !strings.Contains(c.Convert.BaseIRI, "://") {
		return fmt.Errorf("convert.base_iri must be an absolute IRI, got %q", c.Convert.BaseIRI)
	}
	if strings.Contains(c.Convert.BaseIRI, "#") {
		return fmt.Errorf("convert.base_iri must not contain a fragment, got %q", c.Convert.BaseIRI)
	}
	if c.Convert.Output == "" {
		return fmt.Errorf("convert.output is required")
	}
	if c.Convert.Language == "" {
		return fmt.Errorf("convert.language is required")
	}
	if c.Schema.DefaultRange == "" {
		return fmt.Errorf("schema.default_range is required")
	}
	if c.Schema.LinkMLPrefix == "" {
		return fmt.Errorf("schema.linkml_prefix is required")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if c.Publish.NATSURL != "" && c.Publish.Bucket == "" {
		return fmt.Errorf("publish.bucket is required when publish.nats_url is set")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := decodeFile(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

// loadLayer loads only the values set in a YAML file, for merging
func loadLayer(path string) (*Config, error) {
	config := &Config{}
	if err := decodeFile(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

func decodeFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	// ${VAR} and ${VAR:-default} references are expanded before parsing.
	expanded := semconfig.ExpandEnvWithDefaults(string(data))
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Convert
	if other.Convert.BaseIRI != "" {
		c.Convert.BaseIRI = other.Convert.BaseIRI
	}
	if other.Convert.Output != "" {
		c.Convert.Output = other.Convert.Output
	}
	if other.Convert.OutDir != "" {
		c.Convert.OutDir = other.Convert.OutDir
	}
	if other.Convert.Language != "" {
		c.Convert.Language = other.Convert.Language
	}

	// Schema
	if other.Schema.DefaultRange != "" {
		c.Schema.DefaultRange = other.Schema.DefaultRange
	}
	if len(other.Schema.Imports) > 0 {
		c.Schema.Imports = other.Schema.Imports
	}
	if len(other.Schema.DefaultCURIMaps) > 0 {
		c.Schema.DefaultCURIMaps = other.Schema.DefaultCURIMaps
	}
	if other.Schema.LinkMLPrefix != "" {
		c.Schema.LinkMLPrefix = other.Schema.LinkMLPrefix
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}

	// Metrics
	if other.Metrics.Textfile != "" {
		c.Metrics.Textfile = other.Metrics.Textfile
	}

	// Publish
	if other.Publish.NATSURL != "" {
		c.Publish.NATSURL = other.Publish.NATSURL
	}
	if other.Publish.Bucket != "" {
		c.Publish.Bucket = other.Publish.Bucket
	}
}
