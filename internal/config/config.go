package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Hermes  HermesConfig  `yaml:"hermes"`
	Solver  SolverConfig  `yaml:"solver"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port               int   `yaml:"port"`
	MetricsPort        int   `yaml:"metrics_port"`
	RateLimitPerMinute int   `yaml:"rate_limit_per_minute"`
	MaxBodyBytes       int64 `yaml:"max_body_bytes"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type SolverConfig struct {
	IDColumn string   `yaml:"id_column"`
	Inverted []string `yaml:"inverted"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			RateLimitPerMinute: 120,
			MaxBodyBytes:       1 << 20,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Solver: SolverConfig{
			IDColumn: "id",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPTIMIZER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("OPTIMIZER_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("OPTIMIZER_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("OPTIMIZER_MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Server.MaxBodyBytes = n
		}
	}
	if v, ok := os.LookupEnv("OPTIMIZER_HERMES_URL"); ok {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("OPTIMIZER_ID_COLUMN"); v != "" {
		cfg.Solver.IDColumn = v
	}
	if v := os.Getenv("OPTIMIZER_INVERTED"); v != "" {
		cfg.Solver.Inverted = SplitList(v)
	}
	if v := os.Getenv("OPTIMIZER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("OPTIMIZER_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NewLogger builds the process logger described by c. Unknown levels fall
// back to info, unknown formats to JSON.
func (c LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
