package menu

import (
	"Mapper/internal/catalog"
	"Mapper/internal/mapper"
	"Mapper/internal/scan"
	"Mapper/pkg/models"
	"Mapper/pkg/serializers"
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcess struct {
	out io.Reader
}

func (p *fakeProcess) Output() io.Reader  { return p.out }
func (p *fakeProcess) Wait() (int, error) { return 0, nil }

type recordingLauncher struct {
	output string
	runs   [][]string
}

func (l *recordingLauncher) Start(_ context.Context, _ string, args []string) (scan.Process, error) {
	l.runs = append(l.runs, args)
	return &fakeProcess{out: strings.NewReader(l.output)}, nil
}

type harness struct {
	menu       *Menu
	out        *bytes.Buffer
	launcher   *recordingLauncher
	cfg        *models.Config
	configPath string
}

func newHarness(t *testing.T, input string, cfg *models.Config) *harness {
	t.Helper()
	dir := t.TempDir()
	scripts := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scripts, 0o755))

	plugins := []string{"smb-vuln-ms17-010.nse", "ftp-anon.nse", "http-title.nse"}
	for _, p := range plugins {
		require.NoError(t, os.WriteFile(filepath.Join(scripts, p), []byte("description = [[\nA test script.\n]]\n"), 0o600))
	}

	if cfg == nil {
		cfg = models.DefaultConfig()
	}
	cfg.Scanner.ScriptsDir = scripts

	h := &harness{
		out:        &bytes.Buffer{},
		launcher:   &recordingLauncher{output: "Nmap scan report for 10.0.0.5\n|     State: VULNERABLE\nNmap done\n"},
		cfg:        cfg,
		configPath: filepath.Join(dir, "config.yaml"),
	}
	in := bufio.NewReader(strings.NewReader(input))
	repo := mapper.NewMapperRepository(mapper.Options{
		Config:     cfg,
		ConfigPath: h.configPath,
		Catalog:    catalog.Build(plugins),
		Out:        h.out,
		In:         in,
		Launcher:   h.launcher,
	})
	h.menu = New(repo, in, h.out)
	h.menu.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC) }
	return h
}

func (h *harness) run(t *testing.T) string {
	t.Helper()
	require.NoError(t, h.menu.Run(context.Background()))
	return h.out.String()
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func TestQuitAndEndOfInput(t *testing.T) {
	assert.Contains(t, newHarness(t, "q\n", nil).run(t), "Goodbye!")
	assert.Contains(t, newHarness(t, "", nil).run(t), "Goodbye!")
}

func TestInvalidOption(t *testing.T) {
	out := newHarness(t, lines("x", "42", "q"), nil).run(t)
	assert.Equal(t, 2, strings.Count(out, "Invalid Option!"))
}

func TestPluginScanFromReservedCategory(t *testing.T) {
	// SMB is the seventh reserved category in catalog order
	h := newHarness(t, lines("7", "1", "10.0.0.5", "445", "n", "y", "y", "y", "smb", "q"), nil)
	out := h.run(t)

	require.Len(t, h.launcher.runs, 1)
	args := h.launcher.runs[0]
	assert.Equal(t, []string{"-T4", "-p", "445", "--script"}, args[:4])
	assert.Contains(t, args, "10.0.0.5")
	assert.Contains(t, out, "A test script.")
	assert.Contains(t, out, "Command Output:")
	assert.Contains(t, out, "Report Output:")

	saved, err := serializers.LoadConfigFromYAML(h.configPath)
	require.NoError(t, err)
	require.Len(t, saved.SpeedDial, 1)
	assert.Equal(t, models.SpeedDialEntry{Title: "smb", Flags: "-T4 -p 445 --script smb-vuln-ms17-010"}, saved.SpeedDial[0])
}

func TestInvalidTargetAndPortsAreAskedAgain(t *testing.T) {
	h := newHarness(t, lines("7", "1", "not a target", "10.0.0.5", "1-100", "all", "n", "n", "n", "n", "q"), nil)
	out := h.run(t)

	assert.Contains(t, out, "No valid target or file found.")
	assert.Contains(t, out, "Invalid port option")
	require.Len(t, h.launcher.runs, 1)
	assert.Contains(t, h.launcher.runs[0], "-p-")
}

func TestDefaultOutputFileName(t *testing.T) {
	h := newHarness(t, lines("7", "1", "10.0.0.5", "", "y", "", "n", "n", "n", "q"), nil)
	out := h.run(t)

	assert.Contains(t, out, "Default output file: 2024_03_09-02_05_06_PM.txt")
	assert.Contains(t, h.launcher.runs[0], "2024_03_09-02_05_06_PM.txt")
}

func TestCustomCommandInjectionNeverRuns(t *testing.T) {
	h := newHarness(t, lines("c", "-sV 10.0.0.1; ls", "q"), nil)
	out := h.run(t)

	assert.Contains(t, out, "Potential command injection detected. Aborting.")
	assert.Empty(t, h.launcher.runs)
}

func TestCustomCommandSavedAndReplayedFromSpeedDial(t *testing.T) {
	h := newHarness(t, lines(
		"c", "-sV 10.0.0.1", "n", "n", "n", "y", "fast",
		"d", "1", "10.0.0.2", "n", "n", "n", "0",
		"q",
	), nil)
	h.run(t)

	require.Len(t, h.cfg.SpeedDial, 1)
	assert.Equal(t, "-sV", h.cfg.SpeedDial[0].Flags)

	require.Len(t, h.launcher.runs, 2)
	assert.Equal(t, []string{"-sV", "10.0.0.1", "--stats-every", "5s"}, h.launcher.runs[0])
	assert.Equal(t, []string{"10.0.0.2", "-sV", "--stats-every", "5s"}, h.launcher.runs[1])
}

func TestCustomCommandWithoutTrailingIP(t *testing.T) {
	out := newHarness(t, lines("c", "-sV scanme.nmap.org", "n", "n", "n", "q"), nil).run(t)
	assert.Contains(t, out, "Cannot add to speed dial automatically")
}

func TestSpeedDialAddRejectsDuplicateTitleAndErase(t *testing.T) {
	cfg := models.DefaultConfig()
	require.NoError(t, cfg.AddSpeedDial("quick", "-F"))

	h := newHarness(t, lines(
		"d",
		"a", "-sV -O", "quick", "full",
		"e", "1",
		"0", "q",
	), cfg)
	out := h.run(t)

	assert.Contains(t, out, "Invalid title or title already exists.")
	assert.Contains(t, out, "Deleted speed dial 1.")
	assert.Equal(t, []models.SpeedDialEntry{{Title: "full", Flags: "-sV -O"}}, h.cfg.SpeedDial)
}

func TestSearch(t *testing.T) {
	h := newHarness(t, lines("s", "zzz", "ftp", "0", "q"), nil)
	out := h.run(t)

	assert.Contains(t, out, "NO RESULTS")
	assert.Contains(t, out, "Search Results")
	assert.Contains(t, out, "ftp-anon.nse")
	assert.Empty(t, h.launcher.runs)
}

func TestEditSettings(t *testing.T) {
	h := newHarness(t, lines("e", "1", "2", "0", "0", "q"), nil)
	out := h.run(t)

	assert.Contains(t, out, "Invalid. Must be 0 or 1")
	assert.Contains(t, out, "Config saved.")
	assert.False(t, h.cfg.Settings.OutputAsk)

	saved, err := serializers.LoadConfigFromYAML(h.configPath)
	require.NoError(t, err)
	assert.False(t, saved.Settings.OutputAsk)
	assert.True(t, saved.Settings.ReportAsk)
}

func TestAllCategoriesAndHelp(t *testing.T) {
	out := newHarness(t, lines("a", "0", "h", "", "r", "q"), nil).run(t)

	assert.Contains(t, out, "ALL CATEGORIES")
	assert.Contains(t, out, "HELP INFORMATION")
	assert.Contains(t, out, "No scans recorded.")
}

func TestTargetFileIsCountedAndPassedAsInputList(t *testing.T) {
	hosts := filepath.Join(t.TempDir(), "hosts.txt")
	require.NoError(t, os.WriteFile(hosts, []byte("10.0.0.1\n10.0.0.2\n"), 0o600))

	h := newHarness(t, lines("7", "1", hosts, "", "n", "n", "n", "n", "q"), nil)
	out := h.run(t)

	assert.Contains(t, out, "File located, 2 targets.")
	require.Len(t, h.launcher.runs, 1)
	args := h.launcher.runs[0]
	assert.Equal(t, []string{"-iL", hosts}, args[len(args)-4:len(args)-2])
}
