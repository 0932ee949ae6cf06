package linereader

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/aalvaropc/echoloop/internal/domain"
	"github.com/aalvaropc/echoloop/internal/ports"
)

// Reader yields newline-terminated lines from an underlying io.Reader.
// The buffered reader is created once and owned for the Reader's lifetime.
type Reader struct {
	br      *bufio.Reader
	pending []byte
	count   int
}

func New(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

var _ ports.LineSource = (*Reader)(nil)

// Next blocks until a full line, end of input, or a read error.
// Bytes read before an error are held and prefixed to the next line.
func (r *Reader) Next(ctx context.Context) (domain.Line, error) {
	if err := ctx.Err(); err != nil {
		return domain.Line{}, err
	}

	chunk, err := r.br.ReadBytes('\n')
	r.pending = append(r.pending, chunk...)

	if err == nil {
		return r.emit(), nil
	}

	if errors.Is(err, io.EOF) {
		// A final line without a separator is still a line.
		if len(r.pending) > 0 {
			return r.emit(), nil
		}
		return domain.Line{}, io.EOF
	}

	return domain.Line{}, &domain.OpError{
		Op:   "linereader.next",
		Kind: Classify(err),
		Err:  err,
	}
}

func (r *Reader) emit() domain.Line {
	text := r.pending
	if bytes.HasSuffix(text, []byte("\n")) {
		text = text[:len(text)-1]
		text = bytes.TrimSuffix(text, []byte("\r"))
	}

	r.count++
	line := domain.Line{Text: string(text), Number: r.count}
	r.pending = r.pending[:0]
	return line
}
