package scan

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Process is a running scanner whose stdout and stderr share one stream
type Process interface {
	// Output yields the merged stream until every writer has closed it
	Output() io.Reader
	// Wait blocks until exit and returns the exit code. err is only set when the
	// exit status could not be obtained.
	Wait() (code int, err error)
}

// Launcher starts processes. The default runs real binaries.
type Launcher interface {
	Start(ctx context.Context, name string, args []string) (Process, error)
}

// ExecLauncher runs binaries with os/exec
type ExecLauncher struct{}

func (ExecLauncher) Start(ctx context.Context, name string, args []string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	// stdout and stderr share one pipe
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	// The child holds its own copy of w, so the reader sees EOF once it exits
	w.Close()
	return &execProcess{cmd: cmd, out: r}, nil
}

type execProcess struct {
	cmd *exec.Cmd
	out *os.File
}

func (p *execProcess) Output() io.Reader {
	return p.out
}

func (p *execProcess) Wait() (int, error) {
	defer p.out.Close()
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
