package menu

import (
	"Mapper/internal/mapper"
	_ "embed"
	"fmt"
)

//go:embed help.txt
var helpText string

const recentScans = 10

func (m *Menu) settings() error {
	for {
		toggles := m.repo.Config().Settings.Toggles()
		lines := make([]string, len(toggles))
		for i, t := range toggles {
			lines[i] = fmt.Sprintf("%s: %d", t.Name, boolToInt(*t.Value))
		}
		m.out.Menu("Current Configuration", lines)

		option, err := m.ask("\nENTER:\nNumber to edit\n'0' back\n-> ")
		if err != nil || option == "0" {
			return err
		}
		n, ok := parseChoice(option, len(toggles))
		if !ok {
			m.out.Errorf("Invalid option.")
			continue
		}

		value, err := m.ask("\nSet value (1 or 0):\n-> ")
		for err == nil && value != "0" && value != "1" {
			m.out.Errorf("Invalid. Must be 0 or 1")
			value, err = m.ask("\nSet value (1 or 0):\n-> ")
		}
		if err != nil {
			return err
		}

		*toggles[n-1].Value = value == "1"
		if m.save() {
			m.out.Successf("\nConfig saved.")
		}
	}
}

func (m *Menu) help() error {
	m.out.Noticef("\n=== HELP INFORMATION ===")
	m.out.Println(helpText)
	m.out.Noticef("=== END OF HELP ===\n")
	_, err := m.ask("Press ENTER to return to menu...")
	return err
}

func (m *Menu) history() error {
	recs, err := m.repo.History(recentScans)
	if err != nil {
		m.out.Errorf("Unable to read scan history: %v", err)
		return nil
	}
	if len(recs) == 0 {
		m.out.Infof("\nNo scans recorded.")
		return nil
	}
	m.out.Heading("Recent scans:")
	for _, rec := range recs {
		m.out.Println(mapper.FormatRecord(rec))
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
