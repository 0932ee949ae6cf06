package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/echoloop/internal/domain"
	"github.com/aalvaropc/echoloop/internal/infra/config"
)

type settingsFlags struct {
	configPath  string
	debug       bool
	maxFailures int
	backoff     time.Duration
	maxBackoff  time.Duration
	crlf        bool
	logLevel    string
	logFile     string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	def := domain.DefaultConfig()
	pf := cmd.PersistentFlags()

	pf.StringVarP(&f.configPath, "config", "c", "", "Path to echoloop.yaml (optional; searched upward from the working directory if omitted)")
	pf.BoolVar(&f.debug, "debug", false, "enable debug logging with source locations")
	pf.IntVar(&f.maxFailures, "max-failures", def.Retry.MaxConsecutiveFailures, "give up after this many consecutive read failures")
	pf.DurationVar(&f.backoff, "backoff", def.Retry.InitialBackoff, "wait after the first read failure; doubles on each further failure")
	pf.DurationVar(&f.maxBackoff, "max-backoff", def.Retry.MaxBackoff, "upper bound for the wait between read attempts")
	pf.BoolVar(&f.crlf, "crlf", false, "terminate output lines with CRLF instead of LF")
	pf.StringVar(&f.logLevel, "log-level", def.Log.Level, "Diagnostics level: debug|info|warn|error")
	pf.StringVar(&f.logFile, "log-file", "", "write JSON logs to this file instead of stderr")
}

// resolveSettings layers defaults < config file < explicitly set flags.
// It returns the config file path that was used, if any.
func resolveSettings(cmd *cobra.Command, d deps, f settingsFlags) (domain.Config, string, error) {
	path, err := resolveConfigPath(d, f.configPath)
	if err != nil {
		return domain.Config{}, "", err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return domain.Config{}, path, err
	}

	changed := cmd.Flags().Changed
	if changed("max-failures") {
		cfg.Retry.MaxConsecutiveFailures = f.maxFailures
	}
	if changed("backoff") {
		cfg.Retry.InitialBackoff = f.backoff
	}
	if changed("max-backoff") {
		cfg.Retry.MaxBackoff = f.maxBackoff
	}
	if changed("crlf") {
		cfg.Output.Newline = domain.NewlineLF
		if f.crlf {
			cfg.Output.Newline = domain.NewlineCRLF
		}
	}
	if changed("log-level") {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(f.logLevel))
	}
	if changed("log-file") {
		cfg.Log.File = strings.TrimSpace(f.logFile)
	}

	if err := cfg.Validate(path); err != nil {
		return domain.Config{}, path, err
	}
	return cfg, path, nil
}

// resolveConfigPath returns "" when no file was given and none was found upward.
func resolveConfigPath(d deps, explicit string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		return p, nil
	}
	if d.locator == nil || d.getwd == nil {
		return "", nil
	}

	wd, err := d.getwd()
	if err != nil {
		wd = "."
	}

	p, err := d.locator.FindConfig(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return "", nil
		}
		return "", err
	}
	return p, nil
}
