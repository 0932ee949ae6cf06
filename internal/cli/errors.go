package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/echoloop/internal/domain"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		// cobra flag and argument errors
		return exitUsage
	}

	switch oe.Kind {
	case domain.KindInvalidConfig, domain.KindNotFound:
		return exitUsage
	default:
		return exitFailure
	}
}

type theme struct {
	Label  lipgloss.Style
	Detail lipgloss.Style
}

func newTheme(w io.Writer) theme {
	r := lipgloss.NewRenderer(w)
	return theme{
		Label:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Detail: r.NewStyle().Faint(true),
	}
}

func printError(w io.Writer, err error) {
	th := newTheme(w)
	fmt.Fprintf(w, "%s %s\n", th.Label.Render("error:"), userMessage(err))
	if detail := err.Error(); detail != userMessage(err) {
		fmt.Fprintln(w, th.Detail.Render("  "+detail))
	}
}

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return err.Error()
	}

	switch oe.Kind {
	case domain.KindNotFound:
		if strings.TrimSpace(oe.Path) != "" {
			return "Config file not found: " + oe.Path
		}
		return "Config file not found"

	case domain.KindInvalidConfig:
		base := "config"
		if strings.TrimSpace(oe.Path) != "" {
			base = filepath.Base(oe.Path)
		}
		if strings.Contains(strings.ToLower(err.Error()), "yaml:") {
			return "Invalid YAML in " + base
		}
		return "Invalid configuration in " + base

	case domain.KindReadTerminal:
		if errors.Is(err, domain.ErrTooManyFailures) {
			return "Input kept failing; giving up"
		}
		return "Input is no longer readable"

	case domain.KindWriteFailure:
		return "Output is no longer writable"

	default:
		return "Unexpected error"
	}
}
