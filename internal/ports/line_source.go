package ports

import (
	"context"

	"github.com/aalvaropc/echoloop/internal/domain"
)

// LineSource yields input lines one at a time.
// Next returns io.EOF once the input is exhausted and no partial line remains.
type LineSource interface {
	Next(ctx context.Context) (domain.Line, error)
}
