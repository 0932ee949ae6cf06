package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"testing/iotest"

	"github.com/aalvaropc/echoloop/internal/domain"
)

// fixedLocator returns path, or KindNotFound when path is empty.
type fixedLocator struct {
	path string
}

func (l fixedLocator) FindConfig(_ string) (string, error) {
	if l.path == "" {
		return "", &domain.OpError{Op: "configfinder.find", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
	}
	return l.path, nil
}

func testDeps(configPath string) deps {
	return deps{
		locator: fixedLocator{path: configPath},
		getwd:   func() (string, error) { return "/work", nil },
	}
}

func runCLI(t *testing.T, d deps, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(d)

	var out, errOut bytes.Buffer
	cmd.SetIn(stdin)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "echoloop.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

// --- echo ---

func TestRoot_EchoesStdin(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"hello", "hello\n", "hello\n"},
		{"three lines", "a\nb\nc\n", "a\nb\nc\n"},
		{"empty line", "\n", "\n"},
		{"closed immediately", "", ""},
	}
	for _, c := range cases {
		out, _, err := runCLI(t, testDeps(""), strings.NewReader(c.input))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if ExitCode(err) != 0 {
			t.Fatalf("%s: expected exit 0", c.name)
		}
		if out != c.want {
			t.Errorf("%s: got %q, want %q", c.name, out, c.want)
		}
	}
}

func TestRoot_CRLFFlag(t *testing.T) {
	out, _, err := runCLI(t, testDeps(""), strings.NewReader("a\nb\n"), "--crlf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a\r\nb\r\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRoot_ConfigFileFromLocator(t *testing.T) {
	p := writeConfig(t, "echoloop:\n  output:\n    newline: crlf\n")

	out, _, err := runCLI(t, testDeps(p), strings.NewReader("x\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "x\r\n" {
		t.Fatalf("expected config to apply, got %q", out)
	}
}

func TestRoot_FlagOverridesConfigFile(t *testing.T) {
	p := writeConfig(t, "echoloop:\n  output:\n    newline: crlf\n")

	out, _, err := runCLI(t, testDeps(""), strings.NewReader("x\n"), "--config", p, "--crlf=false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "x\n" {
		t.Fatalf("expected flag to win, got %q", out)
	}
}

func TestRoot_MissingExplicitConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	_, _, err := runCLI(t, testDeps(""), strings.NewReader(""), "--config", missing)
	if err == nil {
		t.Fatalf("expected error")
	}
	if ExitCode(err) != 2 {
		t.Fatalf("expected exit 2, got %d", ExitCode(err))
	}
	if !strings.HasPrefix(userMessage(err), "Config file not found") {
		t.Fatalf("unexpected message %q", userMessage(err))
	}
}

func TestRoot_InvalidFlagValue(t *testing.T) {
	out, _, err := runCLI(t, testDeps(""), strings.NewReader("a\n"), "--max-failures", "0")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
	if ExitCode(err) != 2 {
		t.Fatalf("expected exit 2")
	}
	if out != "" {
		t.Fatalf("expected nothing echoed, got %q", out)
	}
}

func TestRoot_UnknownFlag(t *testing.T) {
	_, _, err := runCLI(t, testDeps(""), strings.NewReader(""), "--nope")
	if err == nil {
		t.Fatalf("expected error")
	}
	if ExitCode(err) != 2 {
		t.Fatalf("expected exit 2, got %d", ExitCode(err))
	}
}

func TestRoot_PermanentReadFailureExitsNonZero(t *testing.T) {
	stdin := iotest.ErrReader(errors.New("input/output error"))

	_, stderr, err := runCLI(t, testDeps(""), stdin,
		"--max-failures", "2", "--backoff", "1ms", "--max-backoff", "1ms")
	if !errors.Is(err, domain.ErrTooManyFailures) {
		t.Fatalf("expected ErrTooManyFailures, got %v", err)
	}
	if ExitCode(err) != 1 {
		t.Fatalf("expected exit 1, got %d", ExitCode(err))
	}
	if strings.Count(stderr, "echo.read_failed") != 2 {
		t.Fatalf("expected two diagnostics, got %q", stderr)
	}
}

func TestRoot_ClosedInputExitsNonZero(t *testing.T) {
	_, stderr, err := runCLI(t, testDeps(""), iotest.ErrReader(io.ErrClosedPipe))
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected io.ErrClosedPipe, got %v", err)
	}
	if ExitCode(err) != 1 {
		t.Fatalf("expected exit 1")
	}
	if !strings.Contains(stderr, "read_terminal") {
		t.Fatalf("expected terminal diagnostic, got %q", stderr)
	}
}

// flakyReader fails once between two chunks of input.
type flakyReader struct {
	chunks []string
	failed bool
}

func (f *flakyReader) Read(p []byte) (int, error) {
	if len(f.chunks) == 0 {
		return 0, io.EOF
	}
	if len(f.chunks) == 1 && !f.failed {
		f.failed = true
		return 0, syscall.EAGAIN
	}
	n := copy(p, f.chunks[0])
	f.chunks = f.chunks[1:]
	return n, nil
}

func TestRoot_RecoversWhenInputBecomesAvailable(t *testing.T) {
	stdin := &flakyReader{chunks: []string{"first\n", "second\n"}}

	out, stderr, err := runCLI(t, testDeps(""), stdin, "--backoff", "1ms", "--max-backoff", "1ms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "first\nsecond\n" {
		t.Fatalf("got %q", out)
	}
	if !strings.Contains(stderr, "echo.read_failed") {
		t.Fatalf("expected a diagnostic for the failed read, got %q", stderr)
	}
}

// --- subcommands ---

func TestVersionCmd(t *testing.T) {
	out, _, err := runCLI(t, testDeps(""), strings.NewReader(""), "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "echoloop ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestConfigCmd_Defaults(t *testing.T) {
	out, _, err := runCLI(t, testDeps(""), strings.NewReader(""), "config")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"# source: defaults", "max_consecutive_failures: 5", "initial_backoff: 50ms", "newline: lf"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestConfigCmd_FileAndFlags(t *testing.T) {
	p := writeConfig(t, "echoloop:\n  retry:\n    max_consecutive_failures: 7\n")

	out, _, err := runCLI(t, testDeps(p), strings.NewReader(""), "config", "--max-backoff", "9s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"# source: " + p, "max_consecutive_failures: 7", "max_backoff: 9s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

// --- errors ---

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errors.New("unknown flag: --x"), 2},
		{&domain.OpError{Kind: domain.KindInvalidConfig}, 2},
		{&domain.OpError{Kind: domain.KindNotFound}, 2},
		{&domain.OpError{Kind: domain.KindReadTerminal}, 1},
		{&domain.OpError{Kind: domain.KindWriteFailure}, 1},
		{fmt.Errorf("wrapped: %w", &domain.OpError{Kind: domain.KindExecution}), 1},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Errorf("ExitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("plain"), "plain"},
		{&domain.OpError{Kind: domain.KindNotFound}, "Config file not found"},
		{&domain.OpError{Kind: domain.KindInvalidConfig, Path: "/a/echoloop.yaml", Err: errors.New("yaml: line 2: bad")}, "Invalid YAML in echoloop.yaml"},
		{&domain.OpError{Kind: domain.KindInvalidConfig, Path: "/a/echoloop.yaml", Err: domain.ErrInvalidConfig}, "Invalid configuration in echoloop.yaml"},
		{&domain.OpError{Kind: domain.KindReadTerminal, Err: domain.ErrTooManyFailures}, "Input kept failing; giving up"},
		{&domain.OpError{Kind: domain.KindReadTerminal, Err: os.ErrClosed}, "Input is no longer readable"},
		{&domain.OpError{Kind: domain.KindWriteFailure}, "Output is no longer writable"},
		{&domain.OpError{Kind: domain.KindExecution}, "Unexpected error"},
	}
	for _, c := range cases {
		if got := userMessage(c.err); got != c.want {
			t.Errorf("userMessage(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, &domain.OpError{Op: "linewriter.write", Kind: domain.KindWriteFailure, Err: syscall.EPIPE})

	out := buf.String()
	if !strings.Contains(out, "error:") || !strings.Contains(out, "Output is no longer writable") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, "linewriter.write") {
		t.Fatalf("expected detail line, got %q", out)
	}
}

func TestRoot_LogFileRecordsStart(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "echoloop.log")

	out, stderr, err := runCLI(t, testDeps(""), strings.NewReader("a\n"), "--debug", "--log-file", logPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a\n" {
		t.Fatalf("got %q", out)
	}
	if stderr != "" {
		t.Fatalf("expected diagnostics in the log file only, got %q", stderr)
	}

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"echo.started"`) || !strings.Contains(string(b), logPath) {
		t.Fatalf("expected echo.started with log path, got %s", b)
	}
}
