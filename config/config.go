package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvLogLevel overrides log.level when set
const EnvLogLevel = "PLANTSIM_LOG_LEVEL"

// ServerConfig holds listener configuration
type ServerConfig struct {
	HTTPAddr    string `yaml:"http_addr"`
	GRPCAddr    string `yaml:"grpc_addr"`    // Optional: gRPC health service, empty disables it
	MetricsPath string `yaml:"metrics_path"` // Optional: defaults to /metrics
}

// SimulationConfig holds tick scheduler configuration
type SimulationConfig struct {
	TickInterval string `yaml:"tick_interval"` // Go duration string, e.g. "2500ms"
	TickWorkers  int    `yaml:"tick_workers"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // console or json
}

// APIKey is one tenant credential. The key doubles as the tenant identity.
type APIKey struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

// Config is the root configuration structure
type Config struct {
	Version     int              `yaml:"version"`
	Server      ServerConfig     `yaml:"server"`
	Simulation  SimulationConfig `yaml:"simulation"`
	Log         LogConfig        `yaml:"log"`
	APIKeys     []APIKey         `yaml:"api_keys"`
	AccessRules []AccessRule     `yaml:"access_rules"` // Optional: per-key command rules
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{Version: 1}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = ":3000"
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = "/metrics"
	}
	if c.Simulation.TickInterval == "" {
		c.Simulation.TickInterval = "2500ms"
	}
	if c.Simulation.TickWorkers == 0 {
		c.Simulation.TickWorkers = 4
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// ApplyEnv applies environment overrides
func (c *Config) ApplyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", c.Version)
	}

	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server http_addr is required")
	}
	if !strings.HasPrefix(c.Server.MetricsPath, "/") {
		return fmt.Errorf("server metrics_path must start with '/': %q", c.Server.MetricsPath)
	}

	interval, err := time.ParseDuration(c.Simulation.TickInterval)
	if err != nil {
		return fmt.Errorf("invalid simulation tick_interval %q: %w", c.Simulation.TickInterval, err)
	}
	if interval <= 0 {
		return fmt.Errorf("simulation tick_interval must be positive")
	}
	if c.Simulation.TickWorkers <= 0 {
		return fmt.Errorf("simulation tick_workers must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level: %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format: %q (expected console or json)", c.Log.Format)
	}

	keys := make(map[string]bool)
	for i, k := range c.APIKeys {
		if k.Key == "" {
			return fmt.Errorf("api key %d: key is required", i)
		}
		if keys[k.Key] {
			return fmt.Errorf("duplicate api key for %q", k.Name)
		}
		keys[k.Key] = true
	}

	if _, err := NewAccessValidator(c.AccessRules); err != nil {
		return err
	}

	return nil
}

// TickInterval returns the parsed simulation tick interval. Call after
// Validate.
func (c *Config) TickInterval() time.Duration {
	d, _ := time.ParseDuration(c.Simulation.TickInterval)
	return d
}

// KeySet returns the configured API keys as a lookup set
func (c *Config) KeySet() map[string]string {
	out := make(map[string]string, len(c.APIKeys))
	for _, k := range c.APIKeys {
		out[k.Key] = k.Name
	}
	return out
}

// NewAccessValidator creates an AccessValidator from the config's access rules.
// Returns nil if no access rules are configured.
func (c *Config) NewAccessValidator() (*AccessValidator, error) {
	if len(c.AccessRules) == 0 {
		return nil, nil
	}
	return NewAccessValidator(c.AccessRules)
}
