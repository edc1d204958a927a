// Package config defines the routed server's configuration surface and
// loads it from defaults, an optional YAML file, and environment
// variables, in that priority order, via koanf.
package config

import "time"

// Config is the full configuration tree for cmd/routed.
type Config struct {
	App     AppConfig     `koanf:"app"`
	HTTP    HTTPConfig    `koanf:"http"`
	Graph   GraphConfig   `koanf:"graph"`
	Charge  ChargeConfig  `koanf:"charge"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// AppConfig holds general process identity.
type AppConfig struct {
	Name        string `koanf:"name"`
	Environment string `koanf:"environment"`
}

// HTTPConfig configures the httpapi.Server listener.
type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// GraphConfig locates the on-disk graph directory store.LoadGraph reads.
type GraphConfig struct {
	Dir           string `koanf:"dir"`
	LandmarkCount int    `koanf:"landmark_count"`
}

// ChargeConfig supplies the vehicle parameters charge.Registry and the
// FPC/MCC search variants need but the graph itself does not encode.
type ChargeConfig struct {
	BatteryCapacityWh  float64   `koanf:"battery_capacity_wh"`
	StopPenaltySec     float64   `koanf:"stop_penalty_sec"`
	TargetSoCFractions []float64 `koanf:"target_soc_fractions"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsConfig configures the Prometheus namespace/subsystem stats uses.
type MetricsConfig struct {
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}
