package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aalvaropc/echoloop/internal/domain"
	"gopkg.in/yaml.v3"
)

// Load reads echoloop.yaml at path. An empty path yields the defaults.
func Load(path string) (domain.Config, error) {
	if path == "" {
		return domain.DefaultConfig(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindInvalidConfig
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLFile
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, dto)
}

// Write encodes cfg as echoloop.yaml.
func Write(w io.Writer, cfg domain.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(ToYAML(cfg))
	if err == nil {
		err = enc.Close()
	}
	if err != nil {
		return &domain.OpError{
			Op:   "config.write",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}
	return nil
}
