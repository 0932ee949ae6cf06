package domain

import "time"

// StopReason records why an echo run ended.
type StopReason string

const (
	StopEndOfInput   StopReason = "end_of_input"
	StopInterrupted  StopReason = "interrupted"
	StopReadFailure  StopReason = "read_failure"
	StopWriteFailure StopReason = "write_failure"
)

// RunResult summarizes one echo run.
type RunResult struct {
	StartedAt time.Time
	EndedAt   time.Time

	Lines        int
	ReadFailures int

	Reason StopReason
}

// Duration is zero when either timestamp is unset.
func (r RunResult) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Clean reports whether the run ended without an I/O failure.
func (r RunResult) Clean() bool {
	return r.Reason == StopEndOfInput || r.Reason == StopInterrupted
}
