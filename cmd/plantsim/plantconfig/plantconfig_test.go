package plantconfig

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xiaonanln/plantsim/config"
)

func TestLoaderWithCLIFlags(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	loader := NewLoader(fs)

	args := []string{
		"-http", ":8080",
		"-grpc", ":9400",
		"-tick", "500ms",
		"-api-keys", "alpha, beta,,alpha",
		"-log-level", "debug",
	}

	cfg, err := loader.Load(args)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.HTTPAddr != ":8080" {
		t.Errorf("expected http addr :8080, got %s", cfg.Server.HTTPAddr)
	}
	if cfg.Server.GRPCAddr != ":9400" {
		t.Errorf("expected grpc addr :9400, got %s", cfg.Server.GRPCAddr)
	}
	if cfg.TickInterval() != 500*time.Millisecond {
		t.Errorf("expected 500ms tick, got %v", cfg.TickInterval())
	}
	if len(cfg.APIKeys) != 2 || cfg.APIKeys[0].Key != "alpha" || cfg.APIKeys[1].Key != "beta" {
		t.Errorf("unexpected api keys: %+v", cfg.APIKeys)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug log level, got %s", cfg.Log.Level)
	}
}

func TestLoaderDefaults(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	cfg, err := NewLoader(flag.NewFlagSet("test", flag.ContinueOnError)).Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.HTTPAddr != ":3000" {
		t.Errorf("expected default http addr :3000, got %s", cfg.Server.HTTPAddr)
	}
	if cfg.TickInterval() != 2500*time.Millisecond {
		t.Errorf("expected default 2500ms tick, got %v", cfg.TickInterval())
	}
	if len(cfg.APIKeys) != 0 {
		t.Errorf("expected no api keys, got %+v", cfg.APIKeys)
	}
}

func TestLoaderWithConfigFile(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	content := `
version: 1
server:
  http_addr: ":7000"
simulation:
  tick_interval: "1s"
api_keys:
  - key: "file-key"
    name: "From file"
`
	path := filepath.Join(t.TempDir(), "plantsim.yml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := NewLoader(fs).Load([]string{"-config", path, "-api-keys", "file-key,extra"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.HTTPAddr != ":7000" {
		t.Errorf("expected http addr from file, got %s", cfg.Server.HTTPAddr)
	}
	if cfg.TickInterval() != time.Second {
		t.Errorf("expected 1s tick from file, got %v", cfg.TickInterval())
	}
	keys := cfg.KeySet()
	if len(keys) != 2 || keys["file-key"] != "From file" {
		t.Errorf("unexpected key set: %v", keys)
	}
}

func TestLoaderErrors(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")

	_, err := NewLoader(flag.NewFlagSet("test", flag.ContinueOnError)).Load([]string{"-config", "/does/not/exist.yml"})
	if err == nil || !strings.Contains(err.Error(), "failed to load config") {
		t.Errorf("expected load error, got %v", err)
	}

	_, err = NewLoader(flag.NewFlagSet("test", flag.ContinueOnError)).Load([]string{"-log-level", "chatty"})
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("expected validation error, got %v", err)
	}
}
