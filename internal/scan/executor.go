package scan

import (
	"Mapper/internal/nmap"
	"Mapper/pkg/logger"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Options configure an Executor
type Options struct {
	Binary     string
	StatsEvery string
	// Timeout bounds one execution. Zero means no bound.
	Timeout time.Duration
	// KeepPartialOutput puts the lines read so far into ExitError.Partial
	KeepPartialOutput bool
	Launcher          Launcher
	OnProgress        ProgressFunc
}

// Outcome is the result of a successful execution
type Outcome struct {
	Args     []string
	Lines    []string
	Progress float64
	Started  time.Time
	Finished time.Time
}

// Transcript joins the captured lines. Line endings are as the tool wrote them.
func (o *Outcome) Transcript() string {
	return strings.Join(o.Lines, "")
}

// Executor runs one scan at a time and reports progress while it runs
type Executor struct {
	opts Options
}

func NewExecutor(opts Options) *Executor {
	if opts.Binary == "" {
		opts.Binary = "nmap"
	}
	if opts.StatsEvery == "" {
		opts.StatsEvery = "5s"
	}
	if opts.Launcher == nil {
		opts.Launcher = ExecLauncher{}
	}
	return &Executor{opts: opts}
}

// WithProgress returns a copy of the executor reporting to fn
func (e *Executor) WithProgress(fn ProgressFunc) *Executor {
	opts := e.opts
	opts.OnProgress = fn
	return &Executor{opts: opts}
}

// Execute launches the scanner with args and reads its output line by line
// until the stream is exhausted, then collects the exit status. A periodic
// status flag is added unless args already carry one.
func (e *Executor) Execute(ctx context.Context, args []string) (*Outcome, error) {
	args = nmap.NewCommand(args...).StatsEvery(e.opts.StatsEvery).ToArgList()

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	log := logger.With("binary", e.opts.Binary, "args", strings.Join(args, " "))
	started := time.Now()

	proc, err := e.opts.Launcher.Start(ctx, e.opts.Binary, args)
	if err != nil {
		log.Errorw("Failed to start scanner", "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrProcessLaunchFailed, e.opts.Binary, err)
	}
	log.Infow("Scanner started")

	tracker := progressTracker{notify: e.opts.OnProgress}
	lines, readErr := readLines(proc.Output(), tracker.observe)

	code, waitErr := proc.Wait()
	finished := time.Now()
	log = log.With("code", code, "elapsed", finished.Sub(started).String(), "lines", len(lines))

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		log.Warnw("Scanner timed out", "timeout", e.opts.Timeout.String())
		return nil, fmt.Errorf("%w after %s", ErrScanTimedOut, e.opts.Timeout)
	case ctx.Err() != nil:
		log.Warnw("Scan cancelled")
		return nil, ctx.Err()
	case waitErr != nil:
		log.Errorw("Failed waiting for scanner", "error", waitErr)
		return nil, fmt.Errorf("waiting for %s: %w", e.opts.Binary, waitErr)
	case readErr != nil:
		log.Errorw("Failed reading scanner output", "error", readErr)
		return nil, fmt.Errorf("reading %s output: %w", e.opts.Binary, readErr)
	case code != 0:
		log.Warnw("Scanner exited non-zero")
		exitErr := &ExitError{Code: code}
		if e.opts.KeepPartialOutput {
			exitErr.Partial = lines
		}
		return nil, exitErr
	}

	log.Infow("Scanner finished")
	return &Outcome{
		Args:     args,
		Lines:    lines,
		Progress: tracker.highest,
		Started:  started,
		Finished: finished,
	}, nil
}

// readLines reads r to EOF, keeping each line's terminator. A last line without
// one is kept too.
func readLines(r io.Reader, onLine func(string)) ([]string, error) {
	reader := bufio.NewReader(r)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
			onLine(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return lines, err
		}
	}
}
