package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix    = "EVROUTE_"
	configEnvVar = "EVROUTE_CONFIG_PATH"
)

// Loader assembles a Config from, in increasing priority: built-in
// defaults, an optional YAML file, and EVROUTE_-prefixed environment
// variables.
type Loader struct {
	k           *koanf.Koanf
	configPaths []string
	envPrefix   string
}

// LoaderOption customizes a Loader before Load runs.
type LoaderOption func(*Loader)

// WithConfigPaths overrides the default search paths for the YAML file.
func WithConfigPaths(paths ...string) LoaderOption {
	return func(l *Loader) { l.configPaths = paths }
}

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) { l.envPrefix = prefix }
}

// NewLoader builds a Loader with the package defaults, then applies opts.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k: koanf.New("."),
		configPaths: []string{
			"config.yaml",
			"config/config.yaml",
			"/etc/evroute/config.yaml",
		},
		envPrefix: envPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load runs defaults -> file -> env, in that priority, and unmarshals
// the result into a Config.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDefaults(); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}
	if err := l.loadConfigFile(); err != nil {
		fmt.Fprintf(os.Stderr, "config: no config file found, using defaults/env: %v\n", err)
	}
	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return &cfg, nil
}

func (l *Loader) loadDefaults() error {
	defaults := map[string]any{
		"app.name":        "routed",
		"app.environment": "development",

		"http.addr":             ":8080",
		"http.read_timeout":     30 * time.Second,
		"http.write_timeout":    30 * time.Second,
		"http.shutdown_timeout": 10 * time.Second,

		"graph.dir":            "./graph",
		"graph.landmark_count": 16,

		"charge.battery_capacity_wh":  60000.0,
		"charge.stop_penalty_sec":     60.0,
		"charge.target_soc_fractions": []float64{0.5, 0.8, 1.0},

		"log.level":  "info",
		"log.format": "json",

		"metrics.namespace": "evroute",
		"metrics.subsystem": "routed",
	}
	return l.k.Load(confmap.Provider(defaults, "."), nil)
}

func (l *Loader) loadConfigFile() error {
	if configPath := os.Getenv(configEnvVar); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return l.k.Load(file.Provider(configPath), yaml.Parser())
		}
	}
	for _, path := range l.configPaths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		if _, err := os.Stat(absPath); err == nil {
			return l.k.Load(file.Provider(absPath), yaml.Parser())
		}
	}
	return fmt.Errorf("config file not found in paths: %v", l.configPaths)
}

func (l *Loader) loadEnv() error {
	return l.k.Load(env.Provider(l.envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, l.envPrefix)), "_", ".")
	}), nil)
}

// Load is a convenience wrapper over NewLoader().Load() for the common
// case of no custom options.
func Load() (*Config, error) {
	return NewLoader().Load()
}
