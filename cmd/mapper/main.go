package main

import (
	"Mapper/internal/catalog"
	"Mapper/internal/history"
	"Mapper/internal/mapper"
	"Mapper/internal/ui"
	"Mapper/pkg/helpers"
	"Mapper/pkg/logger"
	"Mapper/pkg/models"
	"Mapper/pkg/serializers"
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"
)

type CLI struct {
	models.Globals

	Menu    MenuCmd    `cmd:"" default:"1" help:"Interactive menu (default)"`
	Catalog CatalogCmd `cmd:"" help:"List plugin categories, or the plugins in one category"`
	Scan    ScanCmd    `cmd:"" help:"Run one plugin against a target"`
	Raw     RawCmd     `cmd:"" help:"Run a custom nmap command line"`
	Report  ReportCmd  `cmd:"" help:"Build a report from a saved scan transcript"`
	History HistoryCmd `cmd:"" help:"Show recent scans"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mapper"),
		kong.Description(description()),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)

	if err := logger.Init(logger.Options{Debug: cli.Debug, File: cli.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "unable to initialise logging: %v\n", err)
	}
	ui.SetNoColor(cli.NoColor)

	err := ctx.Run(&cli.Globals)
	if err != nil {
		logger.Errorf("%s failed: %v", ctx.Command(), err)
	}
	logger.Sync()
	ctx.FatalIfErrorf(err)
}

func description() string {
	return `
Browse nmap scripts by category, run scans with live progress, and review
highlighted output and a vulnerability report.

Examples:
  ./mapper
  ./mapper catalog SMB
  ./mapper scan --plugin=smb-vuln-ms17-010.nse --target=10.0.0.5 --ports=445
  ./mapper raw -- -sV -p 80 10.0.0.5
  ./mapper report scan_output.txt --label=ftp-anon.nse --target=10.0.0.2
`
}

// loadConfig reads the configuration file and applies flag overrides. A bad or
// missing file falls back to the defaults.
func loadConfig(g *models.Globals) *models.Config {
	cfg, err := serializers.LoadConfigFromYAML(g.ConfigFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Infof("Config file %s not found, using defaults", g.ConfigFile)
	case err != nil:
		logger.Warnf("Unable to load config, using defaults: %v", err)
	default:
		logger.Infof("Loaded config from %s with %d speed dial entries", g.ConfigFile, len(cfg.SpeedDial))
	}

	if g.Binary != "" {
		cfg.Scanner.Binary = g.Binary
	}
	if g.ScriptsDir != "" {
		cfg.Scanner.ScriptsDir = g.ScriptsDir
	}
	return cfg
}

// session holds what every command needs: configuration, catalog and the
// scan pipeline
type session struct {
	cfg  *models.Config
	repo mapper.MapperRepository
	out  *ui.Printer
}

func newSession(g *models.Globals, in *bufio.Reader, out io.Writer, interactive bool) *session {
	cfg := loadConfig(g)
	printer := ui.NewPrinter(out)

	if bin := helpers.FindBinary(cfg.Scanner.Binary); bin.Error != nil {
		logger.Warnf("Scanner %s: %v", cfg.Scanner.Binary, bin.Error)
	} else {
		logger.Debugf("Using scanner %s", bin.RealPath)
	}

	cat, err := catalog.Load(cfg.Scanner.ScriptsDir)
	if err != nil {
		printer.Errorf("Unable to read the plugin directory %s: %v", cfg.Scanner.ScriptsDir, err)
	}

	var store *history.Store
	if cfg.History.Enabled {
		if store, err = history.Open(cfg.History.Path); err != nil {
			logger.Warnf("Scan history disabled: %v", err)
		}
	}

	return &session{
		cfg: cfg,
		repo: mapper.NewMapperRepository(mapper.Options{
			Config:      cfg,
			ConfigPath:  g.ConfigFile,
			Catalog:     cat,
			Out:         out,
			In:          in,
			Interactive: interactive,
			History:     store,
		}),
		out: printer,
	}
}

func (s *session) Close() {
	if err := s.repo.Close(); err != nil {
		logger.Warnf("Unable to close scan history: %v", err)
	}
}
