package main

import (
	"Mapper/internal/highlight"
	"Mapper/internal/mapper"
	"Mapper/internal/menu"
	"Mapper/internal/report"
	"Mapper/internal/scan"
	"Mapper/pkg/models"
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

type MenuCmd struct{}

func (c *MenuCmd) Run(g *models.Globals) error {
	in := bufio.NewReader(os.Stdin)
	s := newSession(g, in, os.Stdout, highlight.IsTerminal(os.Stdin))
	defer s.Close()
	return menu.New(s.repo, in, os.Stdout).Run(context.Background())
}

type CatalogCmd struct {
	Category string `arg:"" optional:"" help:"Category to list"`
}

func (c *CatalogCmd) Run(g *models.Globals) error {
	s := newSession(g, nil, os.Stdout, false)
	defer s.Close()

	cat := s.repo.Catalog()
	if c.Category == "" {
		for _, name := range cat.Categories() {
			plugins, _ := cat.Plugins(name)
			fmt.Printf("%-20s %d\n", name, len(plugins))
		}
		return nil
	}
	plugins, ok := cat.Plugins(c.Category)
	if !ok {
		return fmt.Errorf("unknown category %q", c.Category)
	}
	s.out.Menu(c.Category, plugins)
	return nil
}

// ScanFlags are shared by the commands that launch the scanner
type ScanFlags struct {
	Output   string `name:"output" short:"o" help:"Save normal output to this file and append the report"`
	View     bool   `name:"view" help:"Print the highlighted scan output"`
	NoReport bool   `name:"no-report" help:"Skip the vulnerability report"`
}

func (f ScanFlags) run(g *models.Globals, req models.ScanRequest) error {
	s := newSession(g, nil, os.Stdout, false)
	defer s.Close()

	req.OutputFile = f.Output
	res, err := s.repo.Scan(context.Background(), req)
	if err != nil {
		return err
	}
	if f.View {
		if err := s.repo.View(res); err != nil {
			return err
		}
	}
	if f.NoReport {
		return nil
	}
	return s.repo.Report(res, true)
}

type ScanCmd struct {
	ScanFlags

	Plugin string `name:"plugin" short:"s" required:"" help:"Script file name, e.g. ftp-anon.nse"`
	Target string `name:"target" short:"t" required:"" help:"IP address, host, CIDR range, comma separated list or file of targets"`
	Ports  string `name:"ports" short:"p" help:"Port list, or 'all'"`
}

func (c *ScanCmd) Run(g *models.Globals) error {
	target := c.Target
	if strings.Contains(target, ",") {
		path, err := scan.WriteTargetFile(os.TempDir(), target)
		if err != nil {
			return err
		}
		defer os.Remove(path)
		target = path
	}
	return c.ScanFlags.run(g, models.ScanRequest{Plugin: c.Plugin, Target: target, Ports: c.Ports})
}

type RawCmd struct {
	ScanFlags

	Args []string `arg:"" passthrough:"" help:"nmap arguments, without 'nmap'"`
}

func (c *RawCmd) Run(g *models.Globals) error {
	return c.ScanFlags.run(g, models.ScanRequest{Raw: strings.Join(c.Args, " ")})
}

type ReportCmd struct {
	Transcript string `arg:"" help:"Saved scan output, or '-' for stdin"`
	Label      string `name:"label" required:"" help:"Plugin or command the output came from"`
	Target     string `name:"target" help:"Target named in the report"`
	Output     string `name:"output" short:"o" help:"Append the report to this file"`
}

func (c *ReportCmd) Run(_ *models.Globals) error {
	data, err := readTranscript(c.Transcript)
	if err != nil {
		return err
	}
	r := report.Build(string(data), c.Label, c.Target)
	fmt.Println(r.Text())
	if c.Output == "" {
		return nil
	}
	return r.AppendTo(c.Output)
}

func readTranscript(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	return data, nil
}

type HistoryCmd struct {
	Limit int `name:"limit" short:"n" default:"20" help:"Number of scans to show, 0 for all"`
}

func (c *HistoryCmd) Run(g *models.Globals) error {
	s := newSession(g, nil, os.Stdout, false)
	defer s.Close()

	recs, err := s.repo.History(c.Limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		s.out.Infof("No scans recorded.")
		return nil
	}
	for _, rec := range recs {
		fmt.Println(mapper.FormatRecord(rec))
	}
	return nil
}
