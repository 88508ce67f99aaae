// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers an optional YAML file and GRADPREDICT_* env vars on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// ScalerPath and ModelPath locate the fitted artifacts (JSON or YAML).
	ScalerPath string `koanf:"scaler_path"`
	ModelPath  string `koanf:"model_path"`

	// CatalogPath locates the college catalog (.csv or SQLite).
	CatalogPath string `koanf:"catalog_path"`

	// ResultDelayMS pauses the HTML form before showing results. Cosmetic.
	ResultDelayMS int `koanf:"result_delay_ms"`

	// HTTP server timeouts.
	ReadTimeoutMS     int `koanf:"read_timeout_ms"`
	WriteTimeoutMS    int `koanf:"write_timeout_ms"`
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		ScalerPath:        "assets/graduate_adm_scaler.json",
		ModelPath:         "assets/graduate_adm_model.json",
		CatalogPath:       "assets/mtech_colleges.csv",
		ResultDelayMS:     0,
		ReadTimeoutMS:     10_000,
		WriteTimeoutMS:    10_000,
		ShutdownTimeoutMS: 30_000,
	}
}

// ResultDelay returns ResultDelayMS as a duration.
func (c *Config) ResultDelay() time.Duration {
	return time.Duration(c.ResultDelayMS) * time.Millisecond
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMS) * time.Millisecond
}

// WriteTimeout returns WriteTimeoutMS as a duration. It must exceed
// ResultDelay or the form response is cut off.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutMS) * time.Millisecond
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
