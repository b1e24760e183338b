package scan

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcess struct {
	out  io.Reader
	code int
	wait func() (int, error)
}

func (p *fakeProcess) Output() io.Reader { return p.out }

func (p *fakeProcess) Wait() (int, error) {
	if p.wait != nil {
		return p.wait()
	}
	return p.code, nil
}

type fakeLauncher struct {
	output   string
	code     int
	startErr error

	name string
	args []string
}

func (l *fakeLauncher) Start(_ context.Context, name string, args []string) (Process, error) {
	l.name = name
	l.args = args
	if l.startErr != nil {
		return nil, l.startErr
	}
	return &fakeProcess{out: strings.NewReader(l.output), code: l.code}, nil
}

const sampleTranscript = "Starting Nmap 7.94 ( https://nmap.org )\n" +
	"Stats: 0:00:05 elapsed; 0 hosts completed (1 up), 1 undergoing Script Scan\n" +
	"NSE Timing: About 10.00% done; ETC: 12:00 (0:00:45 remaining)\n" +
	"NSE Timing: About 5.00% done; ETC: 12:00 (0:00:45 remaining)\n" +
	"NSE Timing: About 20.00% done; ETC: 12:00 (0:00:40 remaining)\n" +
	"NSE Timing: About 20.00% done; ETC: 12:00 (0:00:40 remaining)\n" +
	"NSE Timing: About 30.00% done; ETC: 12:00 (0:00:35 remaining)\n" +
	"Nmap scan report for 10.0.0.1\n" +
	"Nmap done: 1 IP address (1 host up) scanned in 50.12 seconds"

func TestExecuteSuccessKeepsOrderAndEndings(t *testing.T) {
	l := &fakeLauncher{output: sampleTranscript}
	var seen []float64
	e := NewExecutor(Options{Launcher: l, OnProgress: func(p float64) { seen = append(seen, p) }})

	out, err := e.Execute(context.Background(), []string{"-sV", "10.0.0.1"})
	require.NoError(t, err)

	assert.Equal(t, sampleTranscript, out.Transcript())
	require.Len(t, out.Lines, 9)
	assert.Equal(t, "Starting Nmap 7.94 ( https://nmap.org )\n", out.Lines[0])
	assert.Equal(t, "Nmap done: 1 IP address (1 host up) scanned in 50.12 seconds", out.Lines[8])

	assert.Equal(t, []float64{10, 20, 30}, seen)
	assert.Equal(t, 30.0, out.Progress)
}

func TestExecuteAddsStatsFlag(t *testing.T) {
	l := &fakeLauncher{output: "done\n"}
	e := NewExecutor(Options{Binary: "/usr/bin/nmap", Launcher: l})

	_, err := e.Execute(context.Background(), []string{"-sV", "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/nmap", l.name)
	assert.Equal(t, []string{"-sV", "10.0.0.1", "--stats-every", "5s"}, l.args)

	_, err = e.Execute(context.Background(), []string{"--stats-every", "30s", "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--stats-every", "30s", "10.0.0.1"}, l.args)
}

func TestExecuteNonZeroDiscardsTranscript(t *testing.T) {
	l := &fakeLauncher{output: "Failed to resolve \"nohost\".\n", code: 1}
	e := NewExecutor(Options{Launcher: l})

	out, err := e.Execute(context.Background(), []string{"nohost"})
	assert.Nil(t, out)
	require.ErrorIs(t, err, ErrProcessExitedNonZero)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
	assert.Empty(t, exitErr.Partial)
}

func TestExecuteNonZeroKeepsPartialWhenAsked(t *testing.T) {
	l := &fakeLauncher{output: "line one\nline two\n", code: 2}
	e := NewExecutor(Options{Launcher: l, KeepPartialOutput: true})

	_, err := e.Execute(context.Background(), nil)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, []string{"line one\n", "line two\n"}, exitErr.Partial)
}

func TestExecuteLaunchFailure(t *testing.T) {
	l := &fakeLauncher{startErr: exec.ErrNotFound}
	e := NewExecutor(Options{Launcher: l})

	out, err := e.Execute(context.Background(), nil)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrProcessLaunchFailed)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

type blockingLauncher struct{}

func (blockingLauncher) Start(ctx context.Context, _ string, _ []string) (Process, error) {
	r, w := io.Pipe()
	go func() {
		_, _ = w.Write([]byte("NSE Timing: About 1.00% done\n"))
		<-ctx.Done()
		w.Close()
	}()
	return &fakeProcess{out: r, wait: func() (int, error) { return -1, nil }}, nil
}

func TestExecuteTimeout(t *testing.T) {
	e := NewExecutor(Options{Launcher: blockingLauncher{}, Timeout: 20 * time.Millisecond})

	out, err := e.Execute(context.Background(), nil)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrScanTimedOut)
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := NewExecutor(Options{Launcher: blockingLauncher{}, OnProgress: func(float64) { cancel() }})

	_, err := e.Execute(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithProgressDoesNotMutateOriginal(t *testing.T) {
	l := &fakeLauncher{output: "About 50% done\n"}
	base := NewExecutor(Options{Launcher: l})

	var got []float64
	_, err := base.WithProgress(func(p float64) { got = append(got, p) }).Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{50}, got)
	assert.Nil(t, base.opts.OnProgress)
}

func TestExecLauncherMergesStreams(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	// sh takes the trailing --stats-every as $0 and ignores it.
	script := `printf 'About 40.0%% done\n'; echo oops 1>&2; printf 'last'; exit 3`
	e := NewExecutor(Options{Binary: "sh", KeepPartialOutput: true})

	_, err := e.Execute(context.Background(), []string{"-c", script})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, []string{"About 40.0% done\n", "oops\n", "last"}, exitErr.Partial)
}

func TestExecLauncherMissingBinary(t *testing.T) {
	e := NewExecutor(Options{Binary: "definitely-not-a-real-scanner"})
	_, err := e.Execute(context.Background(), []string{"10.0.0.1"})
	assert.ErrorIs(t, err, ErrProcessLaunchFailed)
}
