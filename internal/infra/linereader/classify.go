package linereader

import (
	"errors"
	"io"
	"os"
	"syscall"

	"github.com/aalvaropc/echoloop/internal/domain"
)

// Classify maps a read error to a transient or terminal kind.
// A terminal source will never produce data again; anything else may recover.
func Classify(err error) domain.ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, os.ErrClosed),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, syscall.EBADF),
		errors.Is(err, syscall.EISDIR),
		errors.Is(err, syscall.EINVAL):
		return domain.KindReadTerminal
	default:
		return domain.KindReadTransient
	}
}
