package ui

import (
	"Mapper/pkg/helpers"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// columnThreshold is the listing length above which two columns are used
const columnThreshold = 10

// Printer writes styled output for the interactive console
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) styled(style lipgloss.Style, format string, args ...interface{}) {
	fmt.Fprintln(p.out, style.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Successf(format string, args ...interface{}) {
	p.styled(SuccessStyle, format, args...)
}

func (p *Printer) Errorf(format string, args ...interface{}) {
	p.styled(ErrorStyle, format, args...)
}

func (p *Printer) Infof(format string, args ...interface{}) {
	p.styled(InfoStyle, format, args...)
}

func (p *Printer) Promptf(format string, args ...interface{}) {
	p.styled(PromptStyle, format, args...)
}

func (p *Printer) Noticef(format string, args ...interface{}) {
	p.styled(ProgressStyle, format, args...)
}

// Prompt prints text without a trailing newline, ready for input
func (p *Printer) Prompt(text string) {
	fmt.Fprint(p.out, PromptStyle.Render(text))
}

func (p *Printer) Println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}

// Progress prints one progress notification
func (p *Printer) Progress(percent float64) {
	p.styled(ProgressStyle, "Progress: %.2f%% done", percent)
}

// Banner prints the start-up banner
func (p *Printer) Banner() {
	p.styled(BannerStyle, "=================================\n      WELCOME TO... MAPPER!")
	p.styled(SuccessStyle, "  An interactive front-end for nmap")
	p.styled(BannerStyle, "=================================")
}

// Heading prints a section title with a rule under it
func (p *Printer) Heading(title string) {
	fmt.Fprintln(p.out)
	p.styled(InfoStyle, "%s", title)
	fmt.Fprintln(p.out, "================================================================")
}

// Menu prints a numbered listing. Plugin listings longer than ten entries are
// printed in two columns with the script extension trimmed.
func (p *Printer) Menu(title string, items []string) {
	fmt.Fprintf(p.out, "\n%s:\n", title)
	if len(items) <= columnThreshold {
		for i, item := range items {
			fmt.Fprintln(p.out, RowStyles[i%2].Render(fmt.Sprintf("%d. %s", i+1, item)))
		}
		return
	}
	for _, row := range Columns(items) {
		fmt.Fprintln(p.out, RowStyles[row.Index%2].Render(row.Text))
	}
}

// Row is one rendered line of a two column listing
type Row struct {
	Index int
	Text  string
}

// Columns lays items out with the first half on the left, numbered from one.
// An odd item out goes on a last row in the right column.
func Columns(items []string) []Row {
	middle := len(items) / 2
	rows := make([]Row, 0, middle+1)
	for i := 0; i < middle; i++ {
		rows = append(rows, Row{
			Index: i,
			Text: fmt.Sprintf("%d. %30s %12d. %30s",
				i+1, helpers.DisplayName(items[i]),
				middle+i+1, helpers.DisplayName(items[middle+i])),
		})
	}
	if len(items)%2 != 0 {
		last := len(items) - 1
		rows = append(rows, Row{
			Index: middle,
			Text:  fmt.Sprintf("%3s %30s %12d. %30s", "", "", last+1, helpers.DisplayName(items[last])),
		})
	}
	return rows
}
