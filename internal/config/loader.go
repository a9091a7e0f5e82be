package config

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvPrefix = "ENGAGE_"
	EnvFile   = "ENGAGE_CONFIG"
)

// metricNamePattern is the Prometheus metric name syntax.
var metricNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if ENGAGE_CONFIG is set
//  3. env (prefix ENGAGE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %v", ErrLoadConfig, path, err)
		}
	}

	// ENGAGE_RULE_WIDTH -> rule_width; underscores are kept to match the
	// flat koanf tags on the struct.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RuleWidth <= 0:
		return fmt.Errorf("%w: rule_width must be positive, got %d", ErrInvalidConfig, c.RuleWidth)
	case utf8.RuneCountInString(c.RuleChar) != 1:
		return fmt.Errorf("%w: rule_char must be a single character, got %q", ErrInvalidConfig, c.RuleChar)
	case strings.TrimSpace(c.Signature) == "":
		return fmt.Errorf("%w: signature must not be empty", ErrInvalidConfig)
	case !metricNamePattern.MatchString(c.MetricsNamespace):
		return fmt.Errorf("%w: metrics_namespace must match %s, got %q", ErrInvalidConfig, metricNamePattern, c.MetricsNamespace)
	}
	return nil
}
