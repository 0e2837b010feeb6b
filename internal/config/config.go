// Package config loads the service configuration from a YAML file, with
// environment overrides for the values that differ per deployment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/debnet/fallout/internal/autocomplete"
	"github.com/debnet/fallout/internal/errors"
)

const (
	// RedisMemory keeps UI state in process memory
	RedisMemory = "memory"
	// RedisEmbedded runs an embedded Redis server, for development
	RedisEmbedded = "miniredis"

	// DefaultDiceShortcut opens the roll modal
	DefaultDiceShortcut = "ctrl+space"
)

// Config is the root configuration
type Config struct {
	API          APIConfig          `yaml:"api"`
	Server       ServerConfig       `yaml:"server"`
	Redis        RedisConfig        `yaml:"redis"`
	Autocomplete AutocompleteConfig `yaml:"autocomplete"`
	Dice         DiceConfig         `yaml:"dice"`
	Log          LogConfig          `yaml:"log"`
}

// APIConfig points at the Fallout web application
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig holds the listeners of the service
type ServerConfig struct {
	HTTPAddr        string        `yaml:"http_addr"`
	GRPCPort        int           `yaml:"grpc_port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RedisConfig selects the UI state store. Endpoint is host:port, a redis://
// URL, "memory" or "miniredis".
type RedisConfig struct {
	Endpoint string        `yaml:"endpoint"`
	StateTTL time.Duration `yaml:"state_ttl"`
}

// AutocompleteConfig configures the search widgets
type AutocompleteConfig struct {
	MinLength int             `yaml:"min_length"`
	Bindings  []BindingConfig `yaml:"bindings"`
}

// BindingConfig is the YAML form of an autocomplete binding
type BindingConfig struct {
	Name       string   `yaml:"name"`
	Endpoint   string   `yaml:"endpoint"`
	Fields     []string `yaml:"fields"`
	Display    bool     `yaml:"display,omitempty"`
	OrderBy    string   `yaml:"order_by,omitempty"`
	// Label, Value and Annotation name record fields. Label and Value fall
	// back to the transform defaults only when absent; an explicit empty
	// name is rejected by validation.
	Label      *string  `yaml:"label,omitempty"`
	Value      *string  `yaml:"value,omitempty"`
	Annotation *string  `yaml:"annotation,omitempty"`
}

// DiceConfig configures the roll modal
type DiceConfig struct {
	Shortcut string `yaml:"shortcut"`
}

// LogConfig configures the process logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	defaults := autocomplete.DefaultBindings()
	bindings := make([]BindingConfig, 0, len(defaults))
	for _, b := range defaults {
		label, value := b.Transform.LabelField, b.Transform.ValueField
		bindings = append(bindings, BindingConfig{
			Name:       b.Name,
			Endpoint:   b.Endpoint,
			Fields:     b.Fields,
			Display:    b.Display,
			OrderBy:    b.OrderBy,
			Label:      &label,
			Value:      &value,
			Annotation: b.Transform.AnnotationField,
		})
	}

	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{
			HTTPAddr:        ":8080",
			GRPCPort:        50051,
			ShutdownTimeout: 30 * time.Second,
		},
		Redis: RedisConfig{
			Endpoint: RedisMemory,
			StateTTL: 30 * 24 * time.Hour,
		},
		Autocomplete: AutocompleteConfig{
			MinLength: autocomplete.DefaultMinLength,
			Bindings:  bindings,
		},
		Dice: DiceConfig{Shortcut: DefaultDiceShortcut},
		Log:  LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse config")
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FALLOUT_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("FALLOUT_REDIS"); v != "" {
		c.Redis.Endpoint = v
	}
	if v := os.Getenv("FALLOUT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks the whole configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("api.base_url", c.API.BaseURL, vb)
	errors.ValidateAbsoluteURL("api.base_url", c.API.BaseURL, vb)
	if c.API.Timeout <= 0 {
		vb.Field("api.timeout", "must be positive")
	}
	errors.ValidateRequired("server.http_addr", c.Server.HTTPAddr, vb)
	if c.Server.GRPCPort <= 0 || c.Server.GRPCPort > 65535 {
		vb.Fieldf("server.grpc_port", "must be a TCP port, got %d", c.Server.GRPCPort)
	}
	errors.ValidateRequired("redis.endpoint", c.Redis.Endpoint, vb)
	errors.ValidateNonNegative("redis.state_ttl", c.Redis.StateTTL, vb)
	errors.ValidateNonNegative("autocomplete.min_length", c.Autocomplete.MinLength, vb)
	if len(c.Autocomplete.Bindings) == 0 {
		vb.RequiredField("autocomplete.bindings")
	}
	for _, b := range c.Bindings() {
		if err := b.Validate(); err != nil {
			vb.Fieldf("autocomplete.bindings", "%s: %v", b.Name, err)
		}
	}
	errors.ValidateEnum("log.level", strings.ToLower(c.Log.Level), []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("log.format", c.Log.Format, []string{"json", "text"}, vb)

	return vb.Build()
}

// Bindings converts the configured bindings, filling the label, value and
// order defaults
func (c *Config) Bindings() []autocomplete.Binding {
	out := make([]autocomplete.Binding, 0, len(c.Autocomplete.Bindings))
	for _, bc := range c.Autocomplete.Bindings {
		tc := autocomplete.DefaultTransformConfig()
		if bc.Label != nil {
			tc.LabelField = *bc.Label
		}
		if bc.Value != nil {
			tc.ValueField = *bc.Value
		}
		tc.AnnotationField = bc.Annotation

		orderBy := bc.OrderBy
		if orderBy == "" {
			orderBy = autocomplete.DefaultOrderBy
		}

		out = append(out, autocomplete.Binding{
			Name:      bc.Name,
			Endpoint:  bc.Endpoint,
			Fields:    bc.Fields,
			Display:   bc.Display,
			OrderBy:   orderBy,
			MinLength: c.Autocomplete.MinLength,
			Transform: tc,
		})
	}
	return out
}

// LogLevel returns the slog level; unknown levels read as info
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds the process logger writing to w
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel()}
	if c.Log.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// GRPCAddr is the gRPC listen address
func (c *Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.Server.GRPCPort)
}
