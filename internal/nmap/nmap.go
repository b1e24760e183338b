package nmap

import (
	"strings"
)

const (
	FlagStatsEvery = "--stats-every"
	FlagScript     = "--script"
	FlagInputFile  = "-iL"
	FlagOutputNorm = "-oN"
	FlagPorts      = "-p"
	FlagAllPorts   = "-p-"
)

// Command accumulates arguments for one nmap invocation. The binary name is not
// part of the argument list.
type Command struct {
	args []string
}

// NewCommand starts a command from optional leading arguments
func NewCommand(args ...string) *Command {
	return &Command{args: append([]string{}, args...)}
}

// Arg appends raw arguments, skipping empty ones
func (c *Command) Arg(args ...string) *Command {
	for _, a := range args {
		if a != "" {
			c.args = append(c.args, a)
		}
	}
	return c
}

// Timing sets a timing template such as -T4
func (c *Command) Timing(template string) *Command {
	return c.Arg(template)
}

// Ports adds a port list, or every port for "all". Empty keeps the tool default.
func (c *Command) Ports(ports string) *Command {
	switch strings.ToLower(strings.TrimSpace(ports)) {
	case "":
		return c
	case "all":
		return c.AllPorts()
	default:
		return c.Arg(FlagPorts, strings.TrimSpace(ports))
	}
}

func (c *Command) AllPorts() *Command {
	return c.Arg(FlagAllPorts)
}

// Script runs a single script file
func (c *Command) Script(path string) *Command {
	return c.Arg(FlagScript, path)
}

// InputFile reads targets from a file
func (c *Command) InputFile(path string) *Command {
	return c.Arg(FlagInputFile, path)
}

// OutputNormal makes the tool write its own normal-format report
func (c *Command) OutputNormal(path string) *Command {
	if path == "" {
		return c
	}
	return c.Arg(FlagOutputNorm, path)
}

// Target adds either a target list file or a single target
func (c *Command) Target(target string, isFile bool) *Command {
	if isFile {
		return c.InputFile(target)
	}
	return c.Arg(target)
}

// StatsEvery asks for periodic status lines unless the caller already did
func (c *Command) StatsEvery(interval string) *Command {
	if HasFlag(c.args, FlagStatsEvery) {
		return c
	}
	return c.Arg(FlagStatsEvery, interval)
}

func (c *Command) ToArgList() []string {
	return append([]string{}, c.args...)
}

func (c *Command) String() string {
	return strings.Join(c.args, " ")
}

// HasFlag reports whether flag appears either alone or in --flag=value form
func HasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag || strings.HasPrefix(a, flag+"=") {
			return true
		}
	}
	return false
}
