package mapper

import (
	"Mapper/internal/catalog"
	"Mapper/internal/highlight"
	"Mapper/internal/history"
	"Mapper/internal/report"
	"Mapper/internal/scan"
	"Mapper/internal/ui"
	"Mapper/pkg/logger"
	"Mapper/pkg/models"
	"Mapper/pkg/serializers"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// MapperRepository is one interactive session: the loaded catalog, the
// configuration and the scan pipeline.
type MapperRepository interface {
	Catalog() *catalog.Catalog
	Describe(plugin string) (string, error)
	Config() *models.Config
	SaveConfig() error
	Scan(ctx context.Context, req models.ScanRequest) (*Result, error)
	View(res *Result) error
	Report(res *Result, onScreen bool) error
	History(limit int) ([]history.Record, error)
	Close() error
}

// Options wire a session. Launcher and History are optional.
type Options struct {
	Config     *models.Config
	ConfigPath string
	Catalog    *catalog.Catalog
	Out        io.Writer
	In         *bufio.Reader
	// Interactive pauses the output viewer between pages
	Interactive bool
	Launcher    scan.Launcher
	History     *history.Store
}

// Result is a finished scan with its report
type Result struct {
	Request models.ScanRequest
	Label   string
	Outcome *scan.Outcome
	Report  *report.Report
}

type mapperRepository struct {
	cfg        *models.Config
	configPath string
	catalog    *catalog.Catalog
	describer  *catalog.Describer
	resolver   scan.Resolver
	executor   *scan.Executor
	viewer     *highlight.Viewer
	printer    *ui.Printer
	store      *history.Store
}

func NewMapperRepository(opts Options) MapperRepository {
	cfg := opts.Config
	if cfg == nil {
		cfg = models.DefaultConfig()
	}
	cfg.ApplyDefaults()

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Build(nil)
	}
	in := opts.In
	if in == nil {
		in = bufio.NewReader(strings.NewReader(""))
	}

	return &mapperRepository{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		catalog:    cat,
		describer:  catalog.NewDescriber(cfg.Scanner.ScriptsDir),
		resolver: scan.Resolver{
			ScriptsDir: cfg.Scanner.ScriptsDir,
			Timing:     cfg.Scanner.Timing,
		},
		executor: scan.NewExecutor(scan.Options{
			Binary:            cfg.Scanner.Binary,
			StatsEvery:        cfg.Scanner.StatsEvery,
			Timeout:           cfg.Scanner.Timeout,
			KeepPartialOutput: cfg.Scanner.KeepPartialOutput,
			Launcher:          opts.Launcher,
		}),
		viewer: &highlight.Viewer{
			Out:      opts.Out,
			In:       in,
			PageSize: highlight.DefaultPageSize,
			Pause:    opts.Interactive,
		},
		printer: ui.NewPrinter(opts.Out),
		store:   opts.History,
	}
}

func (mr *mapperRepository) Catalog() *catalog.Catalog {
	return mr.catalog
}

func (mr *mapperRepository) Describe(plugin string) (string, error) {
	return mr.describer.Describe(plugin)
}

func (mr *mapperRepository) Config() *models.Config {
	return mr.cfg
}

// SaveConfig rewrites the configuration file with the current settings
func (mr *mapperRepository) SaveConfig() error {
	if mr.configPath == "" {
		return nil
	}
	return serializers.SaveConfigToYAML(mr.configPath, mr.cfg)
}

// Scan resolves and runs one request, printing progress as it goes. Every
// attempt that reaches the scanner is recorded in history.
func (mr *mapperRepository) Scan(ctx context.Context, req models.ScanRequest) (*Result, error) {
	args, err := mr.resolver.Args(req)
	if err != nil {
		return nil, err
	}

	label := req.Description()
	if req.IsSpeedDial() && req.Label == "" {
		label = strings.Join(args, " ")
	}

	if err := prepareOutputDir(req.OutputFile); err != nil {
		return nil, err
	}

	ctx, stop := interruptible(ctx)
	defer stop()

	started := time.Now()
	outcome, err := mr.executor.WithProgress(mr.printer.Progress).Execute(ctx, args)
	if err != nil {
		mr.record(req, label, args, nil, started, err)
		mr.showPartial(err)
		return nil, err
	}

	res := &Result{
		Request: req,
		Label:   label,
		Outcome: outcome,
		Report:  report.Build(outcome.Transcript(), label, reportTarget(req)),
	}
	mr.record(req, label, args, res, started, nil)
	return res, nil
}

// View prints the transcript with highlighting
func (mr *mapperRepository) View(res *Result) error {
	return mr.viewer.Show(res.Outcome.Transcript())
}

// Report appends the report to the output file, if there is one, and prints
// it when asked or when there is nowhere else for it to go.
func (mr *mapperRepository) Report(res *Result, onScreen bool) error {
	if out := res.Request.OutputFile; out != "" {
		if err := res.Report.AppendTo(out); err != nil {
			return err
		}
		mr.printer.Successf("Report appended to %s", out)
	}
	if onScreen || res.Request.OutputFile == "" {
		mr.printer.Heading("Report Output:")
		mr.printer.Println(res.Report.Text())
	}
	return nil
}

func (mr *mapperRepository) History(limit int) ([]history.Record, error) {
	if mr.store == nil {
		return nil, nil
	}
	return mr.store.Recent(limit)
}

func (mr *mapperRepository) Close() error {
	if mr.store == nil {
		return nil
	}
	return mr.store.Close()
}

func (mr *mapperRepository) showPartial(err error) {
	var exitErr *scan.ExitError
	if !errors.As(err, &exitErr) || len(exitErr.Partial) == 0 {
		return
	}
	mr.printer.Infof("Output received before the scanner failed:")
	if viewErr := mr.viewer.Show(strings.Join(exitErr.Partial, "")); viewErr != nil {
		logger.Debugf("partial output view stopped: %v", viewErr)
	}
}

func (mr *mapperRepository) record(req models.ScanRequest, label string, args []string, res *Result, started time.Time, scanErr error) {
	if mr.store == nil {
		return
	}
	rec := &history.Record{
		Label:      label,
		Target:     req.Target,
		Args:       strings.Join(args, " "),
		OutputFile: req.OutputFile,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if res != nil {
		rec.Args = strings.Join(res.Outcome.Args, " ")
		rec.Vulnerable = res.Report.Vulnerable
		rec.Findings = len(res.Report.Findings)
		rec.StartedAt = res.Outcome.Started
		rec.FinishedAt = res.Outcome.Finished
	}
	if scanErr != nil {
		rec.Error = scanErr.Error()
		var exitErr *scan.ExitError
		if errors.As(scanErr, &exitErr) {
			rec.ExitCode = exitErr.Code
		}
	}
	if err := mr.store.Add(rec); err != nil {
		logger.Warnf("unable to record scan history: %v", err)
	}
}

// reportTarget is the target named in the report header. Free-form and
// speed dial commands carry their target in the label instead.
func reportTarget(req models.ScanRequest) string {
	if req.IsRaw() || req.IsSpeedDial() {
		return ""
	}
	return req.Target
}

// FormatRecord renders a record for the history listing
func FormatRecord(rec history.Record) string {
	status := "clean"
	switch {
	case !rec.Succeeded():
		status = fmt.Sprintf("failed: %s", rec.Error)
	case rec.Vulnerable:
		status = fmt.Sprintf("%d findings", rec.Findings)
	}
	return fmt.Sprintf("%s  %-30s %-18s %s",
		rec.StartedAt.Format(time.DateTime), rec.Label, rec.Target, status)
}
