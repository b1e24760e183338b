package highlight

import (
	"Mapper/internal/ui"
	"Mapper/pkg/logger"
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DefaultPageSize is the number of lines shown between pauses
const DefaultPageSize = 20

const continuePrompt = "Press Enter to continue..."

var levelStyles = map[Level]lipgloss.Style{
	Warn:     lipgloss.NewStyle().Foreground(ui.Yellow),
	Danger:   lipgloss.NewStyle().Foreground(ui.Magenta),
	Critical: lipgloss.NewStyle().Foreground(ui.Red),
}

// Render returns line styled for its level
func Render(line string) string {
	style, ok := levelStyles[Classify(line)]
	if !ok {
		return line
	}
	return style.Render(line)
}

// Viewer prints a transcript with highlighting, a page at a time
type Viewer struct {
	Out      io.Writer
	In       *bufio.Reader
	PageSize int
	// Pause waits for Enter after every page
	Pause bool
}

// NewViewer pauses between pages only when in is a terminal
func NewViewer(out io.Writer, in io.Reader) *Viewer {
	return &Viewer{
		Out:      out,
		In:       bufio.NewReader(in),
		PageSize: DefaultPageSize,
		Pause:    IsTerminal(in),
	}
}

// IsTerminal reports whether r is an interactive terminal
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Show prints every line of transcript. It returns early with io.EOF if the
// input closes while paused.
func (v *Viewer) Show(transcript string) error {
	fmt.Fprintln(v.Out, ui.InfoStyle.Render("\nCommand Output:"))
	fmt.Fprintln(v.Out, "================================================================")

	pageSize := v.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	lines := strings.Split(transcript, "\n")
	for i, line := range lines {
		fmt.Fprintln(v.Out, Render(line))
		if !v.Pause || (i+1)%pageSize != 0 {
			continue
		}
		fmt.Fprint(v.Out, continuePrompt)
		if _, err := v.In.ReadString('\n'); err != nil {
			logger.Debugf("viewer input closed after %d lines: %v", i+1, err)
			fmt.Fprintln(v.Out)
			return err
		}
	}
	return nil
}
