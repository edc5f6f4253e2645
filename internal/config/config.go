// Package config holds the settings of the shaclparse command: how shapes
// files are loaded, how they are parsed and how results are reported.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/shacl-go/rdf"
	"github.com/geoknoesis/shacl-go/shacl"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "SHACLPARSE_"

// Output formats accepted by Config.Output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the shaclparse configuration file.
type Config struct {
	Load    LoadConfig    `yaml:"load"`
	Parse   ParseConfig   `yaml:"parse"`
	Output  string        `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoadConfig controls how shapes files are read.
type LoadConfig struct {
	Format        string `yaml:"format"` // "" or "auto" detects the format
	BaseIRI       string `yaml:"base_iri"`
	MaxTriples    int64  `yaml:"max_triples"`
	MaxInputBytes int64  `yaml:"max_input_bytes"` // negative disables the limit
	SafeLimits    bool   `yaml:"safe_limits"`
	StrictIRIs    bool   `yaml:"strict_iris"`
}

// ParseConfig controls shape parsing.
type ParseConfig struct {
	Roots         string `yaml:"roots"`
	Concurrency   int    `yaml:"concurrency"`
	StrictBounds  bool   `yaml:"strict_bounds"`
	SkipMalformed bool   `yaml:"skip_malformed"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig enables the Prometheus text file dump.
type MetricsConfig struct {
	File string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Load: LoadConfig{
			Format:        "auto",
			MaxTriples:    rdf.DefaultMaxTriples,
			MaxInputBytes: -1,
		},
		Parse: ParseConfig{
			Roots:       shacl.RootsUnreferenced.String(),
			Concurrency: 1,
		},
		Output: OutputText,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads a YAML configuration file over the defaults. Unknown keys
// are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set. A
// missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from SHACLPARSE_* variables found by lookup,
// typically os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dest *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dest = v
		}
	}
	var errs []error
	boolean := func(name string, dest *bool) {
		if v, ok := lookup(EnvPrefix + name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dest = b
		}
	}
	int64Var := func(name string, dest *int64) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dest = n
		}
	}

	str("FORMAT", &c.Load.Format)
	str("BASE_IRI", &c.Load.BaseIRI)
	int64Var("MAX_TRIPLES", &c.Load.MaxTriples)
	int64Var("MAX_INPUT_BYTES", &c.Load.MaxInputBytes)
	boolean("SAFE_LIMITS", &c.Load.SafeLimits)
	boolean("STRICT_IRIS", &c.Load.StrictIRIs)

	str("ROOTS", &c.Parse.Roots)
	concurrency := int64(c.Parse.Concurrency)
	int64Var("CONCURRENCY", &concurrency)
	c.Parse.Concurrency = int(concurrency)
	boolean("STRICT_BOUNDS", &c.Parse.StrictBounds)
	boolean("SKIP_MALFORMED", &c.Parse.SkipMalformed)

	str("OUTPUT", &c.Output)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("METRICS_FILE", &c.Metrics.File)

	return errors.Join(errs...)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := rdf.ParseFormat(c.Load.Format); !ok {
		errs = append(errs, fmt.Errorf("load.format: unknown format %q", c.Load.Format))
	}
	if c.Load.BaseIRI != "" {
		if err := rdf.ValidateIRI(c.Load.BaseIRI); err != nil {
			errs = append(errs, fmt.Errorf("load.base_iri: %w", err))
		}
	}
	if c.Load.MaxTriples <= 0 {
		errs = append(errs, fmt.Errorf("load.max_triples: must be positive, got %d", c.Load.MaxTriples))
	}
	if _, err := shacl.ParseRootMode(c.Parse.Roots); err != nil {
		errs = append(errs, fmt.Errorf("parse.roots: %w", err))
	}
	if c.Parse.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("parse.concurrency: must be at least 1, got %d", c.Parse.Concurrency))
	}
	switch strings.ToLower(c.Output) {
	case OutputText, OutputJSON, OutputYAML:
	default:
		errs = append(errs, fmt.Errorf("output: must be one of text, json, yaml, got %q", c.Output))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Format returns the configured input format.
func (c *Config) Format() rdf.Format {
	format, _ := rdf.ParseFormat(c.Load.Format)
	return format
}

// RDFOptions translates the load settings into rdf.Load options.
func (c *Config) RDFOptions() []rdf.Option {
	opts := []rdf.Option{
		rdf.OptMaxTriples(c.Load.MaxTriples),
		rdf.OptMaxInputBytes(c.Load.MaxInputBytes),
	}
	if c.Load.SafeLimits {
		opts = append(opts, rdf.OptSafeLimits())
	}
	if c.Load.BaseIRI != "" {
		opts = append(opts, rdf.OptBaseIRI(c.Load.BaseIRI))
	}
	if c.Load.StrictIRIs {
		opts = append(opts, rdf.OptStrictIRIValidation())
	}
	return opts
}

// ShaclOptions translates the parse settings into shacl.Parse options.
// Call Validate first; an invalid root mode falls back to the default.
func (c *Config) ShaclOptions() []shacl.Option {
	mode, _ := shacl.ParseRootMode(c.Parse.Roots)
	opts := []shacl.Option{
		shacl.WithRootDiscovery(mode),
		shacl.WithConcurrency(c.Parse.Concurrency),
	}
	if c.Parse.StrictBounds {
		opts = append(opts, shacl.WithStrictBounds())
	}
	if c.Parse.SkipMalformed {
		opts = append(opts, shacl.SkipMalformed())
	}
	return opts
}
