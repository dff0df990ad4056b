package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var envVars = []string{
	"OPTIMIZER_PORT", "OPTIMIZER_METRICS_PORT", "OPTIMIZER_RATE_LIMIT", "OPTIMIZER_MAX_BODY_BYTES",
	"OPTIMIZER_HERMES_URL", "OPTIMIZER_ID_COLUMN", "OPTIMIZER_INVERTED",
	"OPTIMIZER_LOG_LEVEL", "OPTIMIZER_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimitPerMinute != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Server.RateLimitPerMinute)
	}
	if cfg.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("expected 1MiB body limit, got %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if cfg.Solver.IDColumn != "id" {
		t.Errorf("expected id column 'id', got '%s'", cfg.Solver.IDColumn)
	}
	if len(cfg.Solver.Inverted) != 0 {
		t.Errorf("expected no inverted criteria, got %v", cfg.Solver.Inverted)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "optimizer.yaml")
	data := `
server:
  port: 9100
hermes:
  url: ""
solver:
  id_column: name
  inverted: [cost, latency]
logging:
  format: text
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port to survive, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Hermes.URL != "" {
		t.Errorf("expected hermes disabled, got '%s'", cfg.Hermes.URL)
	}
	if cfg.Solver.IDColumn != "name" {
		t.Errorf("expected id column 'name', got '%s'", cfg.Solver.IDColumn)
	}
	if len(cfg.Solver.Inverted) != 2 || cfg.Solver.Inverted[1] != "latency" {
		t.Errorf("unexpected inverted criteria: %v", cfg.Solver.Inverted)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected text format, got '%s'", cfg.Logging.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OPTIMIZER_PORT", "9000")
	t.Setenv("OPTIMIZER_METRICS_PORT", "9001")
	t.Setenv("OPTIMIZER_RATE_LIMIT", "30")
	t.Setenv("OPTIMIZER_MAX_BODY_BYTES", "4096")
	t.Setenv("OPTIMIZER_HERMES_URL", "nats://nats:4222")
	t.Setenv("OPTIMIZER_ID_COLUMN", "sku")
	t.Setenv("OPTIMIZER_INVERTED", "price, weight,,")
	t.Setenv("OPTIMIZER_LOG_LEVEL", "debug")
	t.Setenv("OPTIMIZER_LOG_FORMAT", "text")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimitPerMinute != 30 {
		t.Errorf("expected rate limit 30, got %d", cfg.Server.RateLimitPerMinute)
	}
	if cfg.Server.MaxBodyBytes != 4096 {
		t.Errorf("expected max body bytes 4096, got %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Hermes.URL != "nats://nats:4222" {
		t.Errorf("expected hermes URL, got '%s'", cfg.Hermes.URL)
	}
	if cfg.Solver.IDColumn != "sku" {
		t.Errorf("expected id column 'sku', got '%s'", cfg.Solver.IDColumn)
	}
	if len(cfg.Solver.Inverted) != 2 || cfg.Solver.Inverted[0] != "price" || cfg.Solver.Inverted[1] != "weight" {
		t.Errorf("unexpected inverted criteria: %v", cfg.Solver.Inverted)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format 'text', got '%s'", cfg.Logging.Format)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggingConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected info message to be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON output, got %q", out)
	}

	buf.Reset()
	LoggingConfig{Level: "bogus", Format: "text"}.NewLogger(&buf).Info("plain")
	if !strings.Contains(buf.String(), "msg=plain") {
		t.Errorf("expected text output at info level, got %q", buf.String())
	}
}

func TestLoadFromEnvInvalidMaxBodyBytes(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPTIMIZER_MAX_BODY_BYTES", "lots")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("expected default max body bytes, got %d", cfg.Server.MaxBodyBytes)
	}
}
