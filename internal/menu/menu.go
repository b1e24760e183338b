package menu

import (
	"Mapper/internal/mapper"
	"Mapper/internal/ui"
	"Mapper/pkg/logger"
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"
)

const mainPrompt = "\nOR ENTER:\n" +
	"- number of script category\n" +
	"- 'a' all categories\n" +
	"- 's' search\n" +
	"- 'c' custom\n" +
	"- 'd' speed dial\n" +
	"- 'e' edit settings\n" +
	"- 'r' recent scans\n" +
	"- 'h' help\n" +
	"- 'q' quit\n" +
	"-> "

// Menu is the interactive console loop
type Menu struct {
	repo mapper.MapperRepository
	in   *bufio.Reader
	out  *ui.Printer
	now  func() time.Time
}

// New reads answers from in. The same reader must back the repository's
// output viewer so paging and prompts share one buffer.
func New(repo mapper.MapperRepository, in *bufio.Reader, out io.Writer) *Menu {
	return &Menu{
		repo: repo,
		in:   in,
		out:  ui.NewPrinter(out),
		now:  time.Now,
	}
}

// Run shows the main menu until the user quits or input ends
func (m *Menu) Run(ctx context.Context) error {
	m.out.Banner()
	for {
		categories := m.repo.Catalog().Reserved()
		m.out.Menu("SCRIPT CATEGORIES", categories)

		choice, err := m.ask(mainPrompt)
		if err != nil {
			return m.finish(err)
		}

		switch strings.ToLower(choice) {
		case "q":
			return m.finish(nil)
		case "a":
			err = m.allCategories(ctx)
		case "s":
			err = m.search(ctx)
		case "c":
			err = m.custom(ctx)
		case "d":
			err = m.speedDial(ctx)
		case "e":
			err = m.settings()
		case "r":
			err = m.history()
		case "h":
			err = m.help()
		default:
			n, ok := parseChoice(choice, len(categories))
			if !ok {
				m.out.Errorf("\nInvalid Option!")
				continue
			}
			err = m.category(ctx, categories[n-1])
		}
		if err != nil {
			return m.finish(err)
		}
	}
}

func (m *Menu) finish(err error) error {
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	m.out.Successf("\nGoodbye!")
	return nil
}

// ask prints prompt and returns the trimmed answer. It returns io.EOF once
// input is exhausted.
func (m *Menu) ask(prompt string) (string, error) {
	m.out.Prompt(prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		logger.Debugf("menu input closed: %v", err)
		m.out.Println()
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// yesNo asks until it gets a yes or a no
func (m *Menu) yesNo(prompt string) (bool, error) {
	for {
		answer, err := m.ask(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		m.out.Errorf("Invalid option")
	}
}

// parseChoice reads a one-based menu number in [1, n]
func parseChoice(s string, n int) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v, true
}
