package report

import (
	"Mapper/internal/files"
	"fmt"
	"strings"
)

const (
	verdictFindings = "The scan has identified potential vulnerabilities. It is recommended to investigate these findings further and apply necessary patches or configuration changes to mitigate any risk."
	verdictClean    = "The scan did not identify any obvious vulnerabilities. However, this does not guarantee the security of the system. Regular scans and updates are recommended."
)

// Lines of context kept on each side of a matched line
const (
	contextBefore = 3
	contextAfter  = 3
)

// Keywords mark lines worth a second look. Each is searched for separately,
// so one line can produce several findings.
var Keywords = []string{
	"vuln",
	"exploit",
	"risk",
	"danger",
	"warning",
	"critical",
	"high",
	"medium",
	"low",
	"Insecure",
	"dangerous",
	"Anonymous FTP Login",
	"State: VULNERABLE",
	"EOL",
	"Windows 2000",
	"Windows NT",
	"Windows 2003",
	"Windows 2008",
	"Out of Support",
	"Login Success",
}

// Finding is one keyword hit with the lines around it. Start and End are
// zero-based line indexes, End exclusive.
type Finding struct {
	Keyword string
	Line    int
	Start   int
	End     int
	Context []string
}

type Report struct {
	Label  string
	Target string
	// Vulnerable is set when any keyword occurs anywhere, ignoring case
	Vulnerable bool
	Findings   []Finding
}

// Build scans a transcript for keywords
func Build(transcript, label, target string) *Report {
	r := &Report{Label: label, Target: target}

	lower := strings.ToLower(transcript)
	for _, k := range Keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			r.Vulnerable = true
			break
		}
	}

	lines := strings.Split(transcript, "\n")
	for _, k := range Keywords {
		for i, line := range lines {
			if !strings.Contains(line, k) {
				continue
			}
			start := max(0, i-contextBefore)
			end := min(len(lines), i+contextAfter+1)
			r.Findings = append(r.Findings, Finding{
				Keyword: k,
				Line:    i,
				Start:   start,
				End:     end,
				Context: append([]string(nil), lines[start:end]...),
			})
		}
	}
	return r
}

// Verdict is the summary sentence for the report
func (r *Report) Verdict() string {
	if r.Vulnerable {
		return verdictFindings
	}
	return verdictClean
}

// Text renders the report as it is shown and saved
func (r *Report) Text() string {
	var b strings.Builder
	if r.Target != "" {
		fmt.Fprintf(&b, "Penetration Testing Report for target %s using %s:\n", r.Target, r.Label)
	} else {
		fmt.Fprintf(&b, "Penetration Testing Report for target using %s:\n", r.Label)
	}
	b.WriteString(r.Verdict())
	b.WriteString("\n\nHighlighted lines from the output:\n")
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "Potential vulnerability found related to '%s':\n", f.Keyword)
		for _, line := range f.Context {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// AppendTo adds the report to the end of a saved scan output
func (r *Report) AppendTo(path string) error {
	if err := files.AppendToFile(path, "\n\n"+r.Text()); err != nil {
		return fmt.Errorf("appending report to %s: %w", path, err)
	}
	return nil
}
