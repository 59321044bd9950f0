// internal/service/scrape/exec.go

package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"skraper/internal/domain/scrape"
	"skraper/internal/logger"
	"skraper/internal/metrics"
)

// Supported tool kinds
const (
	KindYtDlp   = "yt-dlp"
	KindSkraper = "skraper"
)

// Defaults applied by NewExecInvoker
const (
	DefaultTimeout       = 300 * time.Second
	DefaultMaxConcurrent = 4
)

// ExecConfig contains configuration for the subprocess backend
type ExecConfig struct {
	Kind          string
	Path          string
	Timeout       time.Duration
	MaxConcurrent int
}

// ExecInvoker runs the external scraping CLI, one process per call
type ExecInvoker struct {
	kind         string
	path         string
	timeout      time.Duration
	sem          *semaphore.Weighted
	availability *AvailabilityChecker
	metrics      *metrics.Metrics
}

// NewExecInvoker creates a new subprocess backend
func NewExecInvoker(cfg ExecConfig, availability *AvailabilityChecker) *ExecInvoker {
	if cfg.Kind == "" {
		cfg.Kind = KindYtDlp
	}
	if cfg.Path == "" {
		cfg.Path = cfg.Kind
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	if availability == nil {
		availability = NewAvailabilityChecker(cfg.Path, ProbeArgs(cfg.Kind), time.Minute)
	}

	return &ExecInvoker{
		kind:         cfg.Kind,
		path:         cfg.Path,
		timeout:      cfg.Timeout,
		sem:          semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		availability: availability,
		metrics:      metrics.Get(),
	}
}

// Name returns the tool kind
func (e *ExecInvoker) Name() string {
	return e.kind
}

// Path returns the executable the invoker runs
func (e *ExecInvoker) Path() string {
	return e.path
}

// Available reports whether the tool can be run
func (e *ExecInvoker) Available(ctx context.Context) bool {
	return e.availability.Available(ctx)
}

// Args builds the command line for a target
func (e *ExecInvoker) Args(target scrape.Target, opts scrape.Options) []string {
	limit := strconv.Itoa(opts.Limit)

	if e.kind == KindSkraper {
		format := opts.OutputFormat
		if format == "" {
			format = "json"
		}
		args := []string{target.Platform, target.Path, "-n", limit, "-t", format}
		if opts.ContentType == scrape.ContentMediaOnly {
			args = append(args, "-m")
		}
		return args
	}

	args := []string{
		"--dump-json",
		"--no-download",
		"--playlist-end", limit,
		"--extractor-args", "youtube:player_client=default",
	}
	if !opts.ExpectsListing() {
		args = append(args, "--no-playlist")
	}
	return append(args, target.URL)
}

// Invoke runs the tool for a target and decodes its output
func (e *ExecInvoker) Invoke(ctx context.Context, target scrape.Target, opts scrape.Options) (*scrape.RawOutput, error) {
	// the timeout covers the wait for a slot as well as the run
	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.sem.Acquire(runCtx, 1); err != nil {
		if ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			e.metrics.ScrapeInvocationsTotal.WithLabelValues(e.kind, metrics.OutcomeTimeout).Inc()
			logger.Log.Warn("Scraper timed out waiting for a slot",
				logger.WithBackend(e.kind),
				logger.WithURL(target.URL),
				zap.Duration("timeout", e.timeout),
			)
			return nil, scrape.ErrScrapeTimeout
		}
		return nil, fmt.Errorf("waiting for scraper slot: %w", err)
	}
	defer e.sem.Release(1)

	inFlight := e.metrics.ScrapesInFlight.WithLabelValues(e.kind)
	inFlight.Inc()
	defer inFlight.Dec()

	args := e.Args(target, opts)
	cmd := exec.CommandContext(runCtx, e.path, args...)
	// children that inherit stdout must not keep Wait blocked after a kill
	cmd.WaitDelay = 2 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Log.Info("Running scraper",
		logger.WithBackend(e.kind),
		logger.WithURL(target.URL),
		zap.Strings("args", args),
	)

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)
	e.metrics.ScrapeDuration.WithLabelValues(e.kind).Observe(elapsed.Seconds())

	if err := e.classify(ctx, runCtx, cmd, runErr, &stderr); err != nil {
		return nil, err
	}

	data, records, err := ParseOutput(stdout.Bytes(), opts)
	if err != nil {
		e.metrics.ScrapeInvocationsTotal.WithLabelValues(e.kind, metrics.OutcomeInvalid).Inc()
		logger.Log.Error("Scraper output is not valid JSON",
			logger.WithBackend(e.kind),
			zap.String("preview", Preview(stdout.Bytes())),
			zap.Error(err),
		)
		return nil, err
	}

	e.metrics.ScrapeInvocationsTotal.WithLabelValues(e.kind, metrics.OutcomeSuccess).Inc()
	logger.Log.Info("Scraper finished",
		logger.WithBackend(e.kind),
		zap.Int("records", records),
		zap.Duration("elapsed", elapsed),
	)

	return &scrape.RawOutput{
		Backend: e.kind,
		Data:    data,
		Records: records,
		Elapsed: elapsed,
	}, nil
}

// classify maps a finished command onto the domain error taxonomy
func (e *ExecInvoker) classify(ctx, runCtx context.Context, cmd *exec.Cmd, runErr error, stderr *bytes.Buffer) error {
	if runErr == nil {
		return nil
	}

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		e.metrics.ScrapeInvocationsTotal.WithLabelValues(e.kind, metrics.OutcomeTimeout).Inc()
		logger.Log.Error("Scraper timed out",
			logger.WithBackend(e.kind),
			zap.Duration("timeout", e.timeout),
		)
		return scrape.ErrScrapeTimeout

	case ctx.Err() != nil:
		e.metrics.ScrapeInvocationsTotal.WithLabelValues(e.kind, metrics.OutcomeFailed).Inc()
		return fmt.Errorf("scrape canceled: %w", ctx.Err())

	case cmd.ProcessState == nil:
		// the process never started: missing binary, bad permissions
		e.metrics.ScrapeInvocationsTotal.WithLabelValues(e.kind, metrics.OutcomeUnavailable).Inc()
		e.availability.Invalidate()
		logger.Log.Error("Scraper tool unavailable",
			logger.WithBackend(e.kind),
			zap.String("path", e.path),
			zap.Error(runErr),
		)
		return fmt.Errorf("%w: %s: %v", scrape.ErrToolUnavailable, e.path, runErr)
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	msg := strings.TrimSpace(stderr.String())
	e.metrics.ScrapeInvocationsTotal.WithLabelValues(e.kind, metrics.OutcomeFailed).Inc()
	logger.Log.Error("Scraper exited with error",
		logger.WithBackend(e.kind),
		zap.Int("exit_code", exitCode),
		zap.String("stderr", msg),
	)
	return &scrape.ScrapeFailedError{ExitCode: exitCode, Stderr: msg}
}
