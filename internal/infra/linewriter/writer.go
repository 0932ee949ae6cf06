package linewriter

import (
	"bufio"
	"io"

	"github.com/aalvaropc/echoloop/internal/domain"
	"github.com/aalvaropc/echoloop/internal/ports"
)

// Writer echoes lines to an io.Writer, flushing after each one.
type Writer struct {
	bw  *bufio.Writer
	sep string
}

func New(w io.Writer, nl domain.Newline) *Writer {
	return &Writer{
		bw:  bufio.NewWriter(w),
		sep: nl.Bytes(),
	}
}

var _ ports.LineSink = (*Writer)(nil)

func (w *Writer) WriteLine(line domain.Line) error {
	if _, err := w.bw.WriteString(line.Text); err != nil {
		return writeErr(err)
	}
	if _, err := w.bw.WriteString(w.sep); err != nil {
		return writeErr(err)
	}
	if err := w.bw.Flush(); err != nil {
		return writeErr(err)
	}
	return nil
}

func writeErr(err error) error {
	return &domain.OpError{
		Op:   "linewriter.write",
		Kind: domain.KindWriteFailure,
		Err:  err,
	}
}
