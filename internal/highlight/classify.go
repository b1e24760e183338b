package highlight

import (
	"strings"
)

// Level is how a transcript line is shown
type Level int

const (
	Plain Level = iota
	Warn
	Danger
	Critical
)

func (l Level) String() string {
	switch l {
	case Warn:
		return "warn"
	case Danger:
		return "danger"
	case Critical:
		return "critical"
	default:
		return "plain"
	}
}

type rule struct {
	level    Level
	keywords []string
}

// rules are tried in order and the first match wins. Matching is case sensitive.
var rules = []rule{
	{Critical, []string{
		"VULN",
		"Login Success",
		"State: VULNERABLE",
		"Anonymous FTP login allowed",
		"Windows NT",
		"Windows 2000",
		"Windows 2003",
		"Windows 2008",
		"ESXi 6.5.0",
		"EOL",
		"out of support",
		"OUT OF SUPPORT",
		"Out of Support",
		"Warning",
		"dangerous",
	}},
	{Warn, []string{"deprecated"}},
	{Danger, []string{"dangerous", "weak"}},
}

// Classify returns the display level of one line
func Classify(line string) Level {
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(line, k) {
				return r.level
			}
		}
	}
	return Plain
}
