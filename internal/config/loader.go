package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPath is consulted when GRIDIRON_CONFIG is unset.
const DefaultConfigPath = "configs/config.yaml"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) from GRIDIRON_CONFIG, else configs/config.yaml if present
//  3. env (prefix GRIDIRON_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	path := os.Getenv("GRIDIRON_CONFIG")
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath); err == nil {
			path = DefaultConfigPath
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: GRIDIRON_DATABASE_URL, GRIDIRON_REST_ADDR, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("GRIDIRON_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gridiron_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database_url must not be empty")
	}
	if cfg.RESTAddr == "" {
		return nil, errors.New("rest_addr must not be empty")
	}
	if len(cfg.Seasons) == 0 {
		return nil, errors.New("at least one season must be configured")
	}
	if cfg.AnalysisHour < 0 || cfg.AnalysisHour > 23 {
		return nil, errors.New("analysis_hour must be between 0 and 23")
	}
	return &cfg, nil
}
