package scan

import (
	"regexp"
	"strconv"
)

var progressRegex = regexp.MustCompile(`About\s+(\d+(\.\d+)?)%\s+done`)

// ProgressFunc receives each new highest completion percentage of a scan
type ProgressFunc func(percent float64)

// ParseProgress extracts the percentage from a status line such as
// "SYN Stealth Scan Timing: About 42.50% done; ETC: 12:01".
func ParseProgress(line string) (float64, bool) {
	m := progressRegex.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// progressTracker holds the highest percentage seen during one execution and
// only reports strict increases.
type progressTracker struct {
	highest float64
	notify  ProgressFunc
}

func (p *progressTracker) observe(line string) {
	v, ok := ParseProgress(line)
	if !ok || v <= p.highest {
		return
	}
	p.highest = v
	if p.notify != nil {
		p.notify(v)
	}
}
