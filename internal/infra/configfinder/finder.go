package configfinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/echoloop/internal/domain"
	"github.com/aalvaropc/echoloop/internal/ports"
)

const DefaultFileName = "echoloop.yaml"

// Finder locates echoloop.yaml by searching upward from a start directory.
type Finder struct {
	ConfigFile string // defaults to "echoloop.yaml"
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: DefaultFileName}
}

var _ ports.ConfigLocator = (*Finder)(nil)

// FindConfig returns the path of the nearest config file, or a KindNotFound error.
func (f *Finder) FindConfig(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "configfinder.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	name := f.ConfigFile
	if name == "" {
		name = DefaultFileName
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "configfinder.find",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	cur := filepath.Clean(abs)
	for {
		cfgPath := filepath.Join(cur, name)
		if st, err := os.Stat(cfgPath); err == nil && !st.IsDir() {
			return cfgPath, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "configfinder.find",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
