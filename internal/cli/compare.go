package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jverlinden/treecompare/pkg/aggregate"
	"github.com/jverlinden/treecompare/pkg/config"
	"github.com/jverlinden/treecompare/pkg/endpoint"
	"github.com/jverlinden/treecompare/pkg/logging"
	"github.com/jverlinden/treecompare/pkg/models"
	"github.com/jverlinden/treecompare/pkg/output"
	"github.com/jverlinden/treecompare/pkg/parse"
	"github.com/jverlinden/treecompare/pkg/probe"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	Output      string
	SampleCap   int
	Checksum    bool
	Timeout     time.Duration
	Password    string
	PasswordEnv string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare SOURCE DEST",
		Short: "Compare two file trees and report differences by directory",
		Long: `Compare the contents of two locations, each either a local path or a
remote user@host:path, and write a directory-level summary of what
differs. The comparison is read-only: neither side is modified.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().StringVarP(&compareFlags.Output, "output", "o", "", "report file for this run (\"-\" for stdout only; default from config)")
	cmd.Flags().IntVar(&compareFlags.SampleCap, "sample-cap", -1, "max sample entries kept per directory (default from config)")
	cmd.Flags().BoolVar(&compareFlags.Checksum, "checksum", false, "compare file contents instead of size and mtime")
	cmd.Flags().DurationVar(&compareFlags.Timeout, "timeout", 0, "abort the probe after this duration (default from config)")
	cmd.Flags().StringVar(&compareFlags.Password, "password", "", "password for remote endpoints (prefer --password-env)")
	cmd.Flags().StringVar(&compareFlags.PasswordEnv, "password-env", "", "environment variable holding the remote password")

	// Logging flags
	cmd.Flags().StringVar(&compareFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&compareFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&compareFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyCompareFlags(cfg)

	source, err := endpoint.Parse(args[0])
	if err != nil {
		return err
	}
	dest, err := endpoint.Parse(args[1])
	if err != nil {
		return err
	}
	if secret := resolveSecret(); secret != "" {
		source.Secret = secret
		dest.Secret = secret
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	runID := uuid.New().String()
	logger = logger.WithFields(logging.Fields{"run_id": runID})

	// A user interrupt stops the probe but still flushes the partial
	// report gathered so far
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeout, err := cfg.Probe.TimeoutDuration()
	if err != nil {
		return err
	}
	if compareFlags.Timeout > 0 {
		timeout = compareFlags.Timeout
	}

	invoker := probe.New()
	invoker.ProbePath = cfg.Probe.Path
	invoker.HelperPath = cfg.Probe.Helper
	invoker.Checksum = compareFlags.Checksum
	invoker.Timeout = timeout

	report, err := runComparison(ctx, invoker, source, dest, cfg, logger)
	if err != nil {
		logger.Error(ctx, "comparison failed", err, nil)
		return decorateFatal(err)
	}
	report.RunID = runID
	report.Source = args[0]
	report.Dest = args[1]

	if report.Status == models.StatusDegraded {
		color.New(color.FgYellow, color.Bold).Fprintf(os.Stderr,
			"warning: comparison incomplete (%s); report covers partial output\n", report.Warning)
		logger.Warn(ctx, "run degraded", logging.Fields{"reason": report.Warning})
	}

	echoed := false
	if !globalFlags.Quiet {
		if err := output.Render(os.Stdout, report); err != nil {
			return err
		}
		echoed = true
	}

	if compareFlags.Output != "-" {
		sink := compareFlags.Output
		if sink == "" {
			sink = cfg.Report.DefaultOutput
		}
		if err := output.WriteFile(report, sink); err != nil {
			// The report is still in memory; surface it before failing
			// so the comparison work is not lost. The write failure is
			// the error that matters here.
			if !echoed {
				if renderErr := output.Render(os.Stdout, report); renderErr != nil {
					logger.Error(ctx, "fallback report output failed", renderErr, nil)
				}
			}
			return err
		}
		if !globalFlags.Quiet {
			fmt.Printf("\nReport saved to: %s\n", sink)
		}
		logger.Info(ctx, "report written", logging.Fields{"sink": sink})
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

// runComparison drives the probe, parser, and aggregator pipeline and
// assembles the report. Fatal pre-data failures (launch, auth) return
// an error and no report.
func runComparison(
	ctx context.Context,
	invoker *probe.Invoker,
	source, dest *endpoint.Endpoint,
	cfg *config.Config,
	logger logging.Logger,
) (*models.ComparisonReport, error) {
	start := time.Now()

	stream, err := invoker.Start(ctx, source, dest)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "probe started", logging.Fields{
		"source": source.String(),
		"dest":   dest.String(),
	})

	parser := parse.New()
	agg := aggregate.New(cfg.Report.SampleCap)

	counter := output.NewLineCounter(os.Stderr, !globalFlags.Quiet && output.StdoutIsTerminal())
	for stream.Scan() {
		counter.Increment()
		if rec, ok := parser.ParseLine(stream.Line()); ok {
			agg.Add(rec)
		}
	}
	counter.Finish()

	waitErr := stream.Wait()

	status := models.StatusClean
	warning := ""
	switch {
	case waitErr == nil:
	default:
		var authErr *probe.AuthError
		if errors.As(waitErr, &authErr) && agg.Records() == 0 {
			// Rejected before any data: fatal, no report
			return nil, waitErr
		}
		status = models.StatusDegraded
		warning = waitErr.Error()
	}

	report := agg.Report()
	report.StartTime = start
	report.EndTime = time.Now()
	report.Status = status
	report.Warning = warning
	report.LinesParsed = parser.Parsed()
	report.LinesIgnored = parser.Ignored()

	logger.Info(ctx, "probe finished", logging.Fields{
		"status":        string(status),
		"lines_parsed":  parser.Parsed(),
		"lines_ignored": parser.Ignored(),
		"directories":   len(report.Directories),
	})

	return report, nil
}

// applyCompareFlags overrides config values with command-line flags
func applyCompareFlags(cfg *config.Config) {
	if compareFlags.SampleCap >= 0 {
		cfg.Report.SampleCap = compareFlags.SampleCap
	}
	if compareFlags.LogFile != "" {
		cfg.Logging.File = compareFlags.LogFile
	}
	if compareFlags.LogFormat != "" {
		cfg.Logging.Format = compareFlags.LogFormat
	}
	if compareFlags.LogLevel != "" {
		cfg.Logging.Level = compareFlags.LogLevel
	}
}

// resolveSecret picks the remote password from the flags; the
// environment form keeps secrets out of shell history
func resolveSecret() string {
	if compareFlags.Password != "" {
		return compareFlags.Password
	}
	if compareFlags.PasswordEnv != "" {
		return os.Getenv(compareFlags.PasswordEnv)
	}
	return ""
}

// newLogger builds the run logger from config; logging is off unless a
// log file is configured
func newLogger(cfg *config.Config) (logging.Logger, error) {
	if cfg.Logging.File == "" {
		return logging.NewNullLogger(), nil
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	if globalFlags.Verbose {
		level = logging.DebugLevel
	}

	return logging.NewFileLogger(cfg.Logging.File, logging.Format(cfg.Logging.Format), level)
}

// decorateFatal adds remediation hints for the pre-data failure classes
func decorateFatal(err error) error {
	var authErr *probe.AuthError
	if errors.As(err, &authErr) {
		return fmt.Errorf("%w (check credentials, or supply one via --password-env)", err)
	}
	var launchErr *probe.LaunchError
	if errors.As(err, &launchErr) {
		return fmt.Errorf("%w (is it installed and on PATH?)", err)
	}
	return err
}
