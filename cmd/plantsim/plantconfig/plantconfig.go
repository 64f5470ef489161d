// Package plantconfig handles command-line flags and config file loading
// for the plantsim process, returning a validated config.Config.
package plantconfig

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/xiaonanln/plantsim/config"
)

// Loader handles parsing of command-line flags and config file loading.
// It can be instantiated with a custom FlagSet for testing.
type Loader struct {
	fs           *flag.FlagSet
	configPath   *string
	httpAddr     *string
	grpcAddr     *string
	tickInterval *time.Duration
	apiKeys      *string
	logLevel     *string
}

// NewLoader creates a new Loader with flags registered on the provided FlagSet.
// If fs is nil, the default flag.CommandLine is used.
func NewLoader(fs *flag.FlagSet) *Loader {
	if fs == nil {
		fs = flag.CommandLine
	}
	l := &Loader{fs: fs}
	l.configPath = fs.String("config", "", "Path to YAML config file")
	l.httpAddr = fs.String("http", "", "HTTP listen address (overrides server.http_addr)")
	l.grpcAddr = fs.String("grpc", "", "gRPC health listen address (overrides server.grpc_addr)")
	l.tickInterval = fs.Duration("tick", 0, "Simulation tick interval (overrides simulation.tick_interval)")
	l.apiKeys = fs.String("api-keys", "", "Comma-separated API keys accepted in addition to the config file")
	l.logLevel = fs.String("log-level", "", "Log level: debug, info, warn or error")
	return l
}

// Load parses the flags (if not already parsed), loads the config file when
// --config is given and applies flag overrides on top of it
func (l *Loader) Load(args []string) (*config.Config, error) {
	if !l.fs.Parsed() {
		if err := l.fs.Parse(args); err != nil {
			return nil, fmt.Errorf("failed to parse flags: %w", err)
		}
	}

	cfg := config.Default()
	if *l.configPath != "" {
		loaded, err := config.LoadConfig(*l.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg.ApplyEnv()
	}

	if *l.httpAddr != "" {
		cfg.Server.HTTPAddr = *l.httpAddr
	}
	if *l.grpcAddr != "" {
		cfg.Server.GRPCAddr = *l.grpcAddr
	}
	if *l.tickInterval > 0 {
		cfg.Simulation.TickInterval = l.tickInterval.String()
	}
	if *l.logLevel != "" {
		cfg.Log.Level = *l.logLevel
	}
	for _, key := range strings.Split(*l.apiKeys, ",") {
		key = strings.TrimSpace(key)
		if key != "" && !hasKey(cfg, key) {
			cfg.APIKeys = append(cfg.APIKeys, config.APIKey{Key: key, Name: "flag"})
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func hasKey(cfg *config.Config, key string) bool {
	for _, k := range cfg.APIKeys {
		if k.Key == key {
			return true
		}
	}
	return false
}
