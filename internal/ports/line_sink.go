package ports

import "github.com/aalvaropc/echoloop/internal/domain"

// LineSink writes a line followed by a separator and makes it visible to the reader.
type LineSink interface {
	WriteLine(line domain.Line) error
}
