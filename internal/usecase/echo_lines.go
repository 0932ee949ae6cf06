package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/echoloop/internal/domain"
	"github.com/aalvaropc/echoloop/internal/ports"
)

// EchoLines copies lines from a source to a sink until the source is exhausted,
// the context is cancelled, or the failure policy gives up on the source.
type EchoLines struct {
	source ports.LineSource
	sink   ports.LineSink
	retry  domain.RetryConfig
	log    *slog.Logger
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
}

type EchoOption func(*EchoLines)

func WithLogger(l *slog.Logger) EchoOption {
	return func(uc *EchoLines) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) EchoOption {
	return func(uc *EchoLines) { uc.now = now }
}

// WithSleep replaces the backoff wait. The function must return ctx.Err() when ctx ends first.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) EchoOption {
	return func(uc *EchoLines) { uc.sleep = sleep }
}

func NewEchoLines(src ports.LineSource, sink ports.LineSink, retry domain.RetryConfig, opts ...EchoOption) *EchoLines {
	uc := &EchoLines{
		source: src,
		sink:   sink,
		retry:  retry,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:    time.Now,
		sleep:  sleepCtx,
	}
	for _, opt := range opts {
		opt(uc)
	}
	if uc.retry.MaxConsecutiveFailures < 1 {
		uc.retry.MaxConsecutiveFailures = 1
	}
	return uc
}

// Execute runs the loop. End of input and cancellation are clean stops and return a nil error.
// RunResult is populated in every case.
func (uc *EchoLines) Execute(ctx context.Context) (run domain.RunResult, err error) {
	run.StartedAt = uc.now()
	defer func() {
		run.EndedAt = uc.now()
		level := slog.LevelInfo
		if !run.Clean() {
			level = slog.LevelError
		}
		uc.log.Log(context.Background(), level, "echo.stopped",
			"reason", run.Reason,
			"lines", run.Lines,
			"read_failures", run.ReadFailures,
			"duration", run.Duration(),
		)
	}()

	bo := backoff{initial: uc.retry.InitialBackoff, max: uc.retry.MaxBackoff}
	consecutive := 0

	for {
		if ctx.Err() != nil {
			run.Reason = domain.StopInterrupted
			return run, nil
		}

		line, rerr := uc.source.Next(ctx)
		if rerr == nil {
			if werr := uc.sink.WriteLine(line); werr != nil {
				run.Reason = domain.StopWriteFailure
				return run, werr
			}
			run.Lines++
			consecutive = 0
			bo.reset()
			uc.log.Debug("echo.line", "number", line.Number, "bytes", len(line.Text))
			continue
		}

		if errors.Is(rerr, io.EOF) {
			run.Reason = domain.StopEndOfInput
			return run, nil
		}

		// Cancellation may surface as a read error (e.g. stdin closed to unblock the read).
		if ctx.Err() != nil {
			run.Reason = domain.StopInterrupted
			return run, nil
		}

		run.ReadFailures++
		consecutive++
		kind := domain.KindOf(rerr)

		uc.log.Warn("echo.read_failed",
			"error", rerr.Error(),
			"kind", kind,
			"attempt", consecutive,
			"max_attempts", uc.retry.MaxConsecutiveFailures,
		)

		if kind == domain.KindReadTerminal {
			run.Reason = domain.StopReadFailure
			return run, rerr
		}

		if consecutive >= uc.retry.MaxConsecutiveFailures {
			run.Reason = domain.StopReadFailure
			return run, &domain.OpError{
				Op:   "echo.read",
				Kind: domain.KindReadTerminal,
				Err:  fmt.Errorf("%w (%d): %w", domain.ErrTooManyFailures, consecutive, rerr),
			}
		}

		wait := bo.next()
		uc.log.Debug("echo.backoff", "wait", wait)
		if err := uc.sleep(ctx, wait); err != nil {
			run.Reason = domain.StopInterrupted
			return run, nil
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
