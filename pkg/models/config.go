package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateTitle is returned when a speed dial title is already taken
var ErrDuplicateTitle = errors.New("title already exists")

const (
	DefaultBinary     = "nmap"
	DefaultScriptsDir = "/usr/share/nmap/scripts/"
	DefaultStatsEvery = "5s"
	DefaultTiming     = "-T4"
	DefaultHistoryDB  = "mapper_history.db"
)

// Config is the on-disk configuration file
type Config struct {
	Settings  Settings         `yaml:"configuration"`
	Scanner   Scanner          `yaml:"scanner"`
	History   History          `yaml:"history"`
	SpeedDial []SpeedDialEntry `yaml:"speed_dial,omitempty"`
}

// Settings are the interactive toggles
type Settings struct {
	OutputAsk           bool `yaml:"output_ask"`
	OutputDefault       bool `yaml:"output_default"`
	ScreenOutputAsk     bool `yaml:"screen_output_ask"`
	ScreenOutputDefault bool `yaml:"screen_output_default"`
	ReportAsk           bool `yaml:"report_ask"`
	ReportDefault       bool `yaml:"report_default"`
	SpeedDialAsk        bool `yaml:"speed_dial_ask"`
}

// Scanner configures how the external tool is invoked
type Scanner struct {
	Binary     string `yaml:"binary"`
	ScriptsDir string `yaml:"scripts_dir"`
	StatsEvery string `yaml:"stats_every"`
	Timing     string `yaml:"timing"`
	// Timeout bounds a single scan. Zero waits for the scan to finish however long it takes.
	Timeout           time.Duration `yaml:"timeout"`
	KeepPartialOutput bool          `yaml:"keep_partial_output"`
}

type History struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// SpeedDialEntry is a saved set of flags, without a target
type SpeedDialEntry struct {
	Title string `yaml:"title"`
	Flags string `yaml:"flags"`
}

// Toggle exposes one setting for listing and editing by number
type Toggle struct {
	Name  string
	Value *bool
}

// DefaultConfig mirrors a fresh install: ask before every optional step
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			OutputAsk:       true,
			ScreenOutputAsk: true,
			ReportAsk:       true,
			SpeedDialAsk:    true,
		},
		Scanner: Scanner{
			Binary:     DefaultBinary,
			ScriptsDir: DefaultScriptsDir,
			StatsEvery: DefaultStatsEvery,
			Timing:     DefaultTiming,
		},
		History: History{
			Enabled: true,
			Path:    DefaultHistoryDB,
		},
	}
}

// ApplyDefaults fills empty scanner and history fields
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.Scanner.Binary == "" {
		c.Scanner.Binary = d.Scanner.Binary
	}
	if c.Scanner.ScriptsDir == "" {
		c.Scanner.ScriptsDir = d.Scanner.ScriptsDir
	}
	if c.Scanner.StatsEvery == "" {
		c.Scanner.StatsEvery = d.Scanner.StatsEvery
	}
	if c.Scanner.Timing == "" {
		c.Scanner.Timing = d.Scanner.Timing
	}
	if c.History.Path == "" {
		c.History.Path = d.History.Path
	}
}

// Toggles lists the settings in file order
func (s *Settings) Toggles() []Toggle {
	return []Toggle{
		{Name: "output_ask", Value: &s.OutputAsk},
		{Name: "output_default", Value: &s.OutputDefault},
		{Name: "screen_output_ask", Value: &s.ScreenOutputAsk},
		{Name: "screen_output_default", Value: &s.ScreenOutputDefault},
		{Name: "report_ask", Value: &s.ReportAsk},
		{Name: "report_default", Value: &s.ReportDefault},
		{Name: "speed_dial_ask", Value: &s.SpeedDialAsk},
	}
}

// AddSpeedDial stores flags under a new title
func (c *Config) AddSpeedDial(title, flags string) error {
	if title == "" {
		return fmt.Errorf("empty speed dial title")
	}
	for _, e := range c.SpeedDial {
		if e.Title == title {
			return fmt.Errorf("%w: %s", ErrDuplicateTitle, title)
		}
	}
	c.SpeedDial = append(c.SpeedDial, SpeedDialEntry{Title: title, Flags: flags})
	return nil
}

// RemoveSpeedDial deletes the entry at a zero based index
func (c *Config) RemoveSpeedDial(index int) (SpeedDialEntry, error) {
	if index < 0 || index >= len(c.SpeedDial) {
		return SpeedDialEntry{}, fmt.Errorf("no speed dial entry %d", index+1)
	}
	removed := c.SpeedDial[index]
	c.SpeedDial = append(c.SpeedDial[:index], c.SpeedDial[index+1:]...)
	return removed, nil
}
