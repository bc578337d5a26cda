// Package config loads the brandbook runtime configuration: built-in
// defaults, then an optional YAML file, then BRANDBOOK_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BRANDBOOK_"

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "brandbook.yaml"

// Environment names.
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config is the runtime configuration shared by the web server and the CLI.
type Config struct {
	Addr string `yaml:"addr" koanf:"addr"`
	Env  string `yaml:"env" koanf:"env"`
	// ContentFile replaces the embedded content tree when set.
	ContentFile string `yaml:"content_file" koanf:"content_file"`
	// TemplatesDir and PublicDir serve from disk instead of the embedded
	// copies; used together with Dev for live editing.
	TemplatesDir string   `yaml:"templates_dir" koanf:"templates_dir"`
	PublicDir    string   `yaml:"public_dir" koanf:"public_dir"`
	Dev          bool     `yaml:"dev" koanf:"dev"`
	SessionKey   string   `yaml:"session_key" koanf:"session_key"`
	LogLevel     string   `yaml:"log_level" koanf:"log_level"`
	CORSOrigins  []string `yaml:"cors_origins" koanf:"cors_origins"`
	PrefsFile    string   `yaml:"prefs_file" koanf:"prefs_file"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Addr:        ":8080",
		Env:         EnvDev,
		LogLevel:    "info",
		CORSOrigins: []string{"*"},
	}
}

// Load reads configuration from path, then overlays environment variables
// (BRANDBOOK_ADDR -> addr, ...). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func envValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "cors_origins" {
		return key, splitList(value)
	}
	return key, value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Addr = strings.TrimSpace(c.Addr)
}

// IsProd reports whether the server runs in production mode.
func (c *Config) IsProd() bool { return c.Env == EnvProd }

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	var invalid []string
	if c.Addr == "" {
		invalid = append(invalid, "addr")
	}
	if c.Env != EnvDev && c.Env != EnvProd {
		invalid = append(invalid, "env")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		invalid = append(invalid, "log_level")
	}
	if c.IsProd() && len(c.SessionKey) < 32 {
		invalid = append(invalid, "session_key")
	}
	if c.IsProd() && c.Dev {
		invalid = append(invalid, "dev")
	}
	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}
