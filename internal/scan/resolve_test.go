package scan

import (
	"Mapper/pkg/models"
	"Mapper/pkg/validators"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T, plugins ...string) Resolver {
	t.Helper()
	dir := t.TempDir()
	for _, p := range plugins {
		require.NoError(t, os.WriteFile(filepath.Join(dir, p), []byte("description = [[x]]"), 0o600))
	}
	return Resolver{ScriptsDir: dir, Timing: "-T4"}
}

func TestPluginArgs(t *testing.T) {
	r := newResolver(t, "ssl-heartbleed.nse")

	args, err := r.Args(models.ScanRequest{
		Plugin:     "ssl-heartbleed.nse",
		Target:     "10.0.0.1",
		Ports:      "443,8443",
		OutputFile: "out.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-T4", "-p", "443,8443",
		"--script", filepath.Join(r.ScriptsDir, "ssl-heartbleed.nse"),
		"-oN", "out.txt",
		"10.0.0.1",
	}, args)
}

func TestPluginArgsAllPortsAndTargetFile(t *testing.T) {
	r := newResolver(t, "ftp-anon.nse")
	hosts := filepath.Join(t.TempDir(), "hosts.txt")
	require.NoError(t, os.WriteFile(hosts, []byte("10.0.0.1\n"), 0o600))

	args, err := r.Args(models.ScanRequest{Plugin: "ftp-anon.nse", Target: hosts, Ports: "all"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-T4", "-p-",
		"--script", filepath.Join(r.ScriptsDir, "ftp-anon.nse"),
		"-iL", hosts,
	}, args)
}

func TestPluginArgsMissingPlugin(t *testing.T) {
	r := newResolver(t)

	_, err := r.Args(models.ScanRequest{Plugin: "smb-vuln-ms17-010.nse", Target: "10.0.0.1"})
	assert.ErrorIs(t, err, ErrPluginNotFound)

	_, err = r.Args(models.ScanRequest{Plugin: "../../etc/passwd", Target: "10.0.0.1"})
	assert.ErrorIs(t, err, ErrPluginNotFound)
}

func TestPluginArgsValidation(t *testing.T) {
	r := newResolver(t, "ftp-anon.nse")

	_, err := r.Args(models.ScanRequest{Plugin: "ftp-anon.nse", Target: "bad target"})
	assert.ErrorIs(t, err, validators.ErrInvalidTarget)

	_, err = r.Args(models.ScanRequest{Plugin: "ftp-anon.nse", Target: "10.0.0.1", Ports: "21-25"})
	assert.ErrorIs(t, err, validators.ErrInvalidPorts)
}

func TestRawArgs(t *testing.T) {
	r := newResolver(t)

	args, err := r.Args(models.ScanRequest{Raw: "  -sV -p 80   10.0.0.1 ", OutputFile: "o.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-sV", "-p", "80", "10.0.0.1", "-oN", "o.txt"}, args)
}

func TestRawArgsInjectionRejectedBeforeSpawn(t *testing.T) {
	r := newResolver(t)

	args, err := r.Args(models.ScanRequest{Raw: "echo hi; rm -rf /"})
	require.ErrorIs(t, err, validators.ErrInjectionRejected)
	assert.Nil(t, args)
}

func TestSpeedDialArgs(t *testing.T) {
	r := newResolver(t)

	args, err := r.Args(models.ScanRequest{Flags: "-sV --top-ports 100", Target: "scanme.nmap.org", OutputFile: "s.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"scanme.nmap.org", "-sV", "--top-ports", "100", "-oN", "s.txt"}, args)

	_, err = r.Args(models.ScanRequest{Flags: "-sV", Target: ""})
	assert.ErrorIs(t, err, validators.ErrInvalidTarget)
}
