package domain

import (
	"fmt"
	"strings"
	"time"
)

// Config represents the echoloop configuration loaded from echoloop.yaml and flags.
type Config struct {
	Retry  RetryConfig
	Output OutputConfig
	Log    LogConfig
}

// RetryConfig bounds how long the loop keeps serving a failing input.
type RetryConfig struct {
	MaxConsecutiveFailures int
	InitialBackoff         time.Duration
	MaxBackoff             time.Duration
}

type OutputConfig struct {
	Newline Newline
}

type LogConfig struct {
	Level string
	File  string
}

// DefaultConfig provides sane defaults if echoloop.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Retry: RetryConfig{
			MaxConsecutiveFailures: 5,
			InitialBackoff:         50 * time.Millisecond,
			MaxBackoff:             2 * time.Second,
		},
		Output: OutputConfig{Newline: NewlineLF},
		Log:    LogConfig{Level: "warn"},
	}
}

// Validate checks field ranges. path is only used to annotate the error.
func (c Config) Validate(path string) error {
	if c.Retry.MaxConsecutiveFailures < 1 {
		return invalidField(path, "retry.max_consecutive_failures", "must be >= 1")
	}
	if c.Retry.InitialBackoff < 0 {
		return invalidField(path, "retry.initial_backoff", "must not be negative")
	}
	if c.Retry.MaxBackoff < c.Retry.InitialBackoff {
		return invalidField(path, "retry.max_backoff", "must be >= retry.initial_backoff")
	}
	switch c.Output.Newline {
	case NewlineLF, NewlineCRLF:
	default:
		return invalidField(path, "output.newline", fmt.Sprintf("unsupported value %q (expected lf|crlf)", c.Output.Newline))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return invalidField(path, "log.level", fmt.Sprintf("unsupported value %q (expected debug|info|warn|error)", c.Log.Level))
	}
	return nil
}

func invalidField(path, field, msg string) error {
	return &OpError{
		Op:   "config.validate",
		Kind: KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, ErrInvalidConfig),
	}
}
