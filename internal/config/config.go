// Package config defines process configuration and its loading.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - Failures wrap this package's sentinel errors.
package config

// Config contains process configuration. None of it changes how scores,
// tiers or letters are computed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address of the offers server, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RuleWidth is the length of the separator printed between letters.
	RuleWidth int `koanf:"rule_width"`

	// RuleChar is the single character the separator is made of.
	RuleChar string `koanf:"rule_char"`

	// Signature is the team name printed under each letter.
	Signature string `koanf:"signature"`

	// MetricsNamespace prefixes every exported Prometheus metric.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Addr:      ":9080",
		RuleWidth: 80,
		RuleChar:  "=",
		Signature: "The Healthcare Team",

		MetricsNamespace: "engageoffer",
	}
}
