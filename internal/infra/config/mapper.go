package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/aalvaropc/echoloop/internal/domain"
)

// MapConfig applies parsed values on top of domain.DefaultConfig and validates the result.
func MapConfig(path string, y YAMLFile) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	in := y.Echoloop

	if in.Retry.MaxConsecutiveFailures != nil {
		cfg.Retry.MaxConsecutiveFailures = *in.Retry.MaxConsecutiveFailures
	}
	if s := strings.TrimSpace(in.Retry.InitialBackoff); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return cfg, invalidField(path, "retry.initial_backoff", err.Error())
		}
		cfg.Retry.InitialBackoff = d
	}
	if s := strings.TrimSpace(in.Retry.MaxBackoff); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return cfg, invalidField(path, "retry.max_backoff", err.Error())
		}
		cfg.Retry.MaxBackoff = d
	}
	if s := strings.TrimSpace(in.Output.Newline); s != "" {
		cfg.Output.Newline = domain.Newline(strings.ToLower(s))
	}
	if s := strings.TrimSpace(in.Log.Level); s != "" {
		cfg.Log.Level = strings.ToLower(s)
	}
	if s := strings.TrimSpace(in.Log.File); s != "" {
		cfg.Log.File = s
	}

	if err := cfg.Validate(path); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ToYAML is the inverse of MapConfig, used to print the effective configuration.
func ToYAML(cfg domain.Config) YAMLFile {
	maxFailures := cfg.Retry.MaxConsecutiveFailures
	return YAMLFile{Echoloop: YAMLConfig{
		Retry: YAMLRetry{
			MaxConsecutiveFailures: &maxFailures,
			InitialBackoff:         cfg.Retry.InitialBackoff.String(),
			MaxBackoff:             cfg.Retry.MaxBackoff.String(),
		},
		Output: YAMLOutput{Newline: string(cfg.Output.Newline)},
		Log: YAMLLog{
			Level: cfg.Log.Level,
			File:  cfg.Log.File,
		},
	}}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
