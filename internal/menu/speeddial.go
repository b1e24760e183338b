package menu

import (
	"Mapper/pkg/models"
	"Mapper/pkg/validators"
	"context"
	"fmt"
	"strconv"
	"strings"
)

const speedDialPrompt = "\nENTER:\nNumber of speed dial\n'a' add\n'e' erase\n'0' back\n-> "

func (m *Menu) custom(ctx context.Context) error {
	m.out.Infof("\nExample: nmap <target> -p 80 -sV -O")
	command, err := m.ask("Enter your custom Nmap command (without 'nmap'):\n-> nmap ")
	if err != nil {
		return err
	}
	if validators.CheckRawCommand(command) != nil {
		m.out.Errorf("Potential command injection detected. Aborting.")
		return nil
	}
	if command == "" {
		m.out.Errorf("No command entered.")
		return nil
	}

	output, err := m.outputFile()
	if err != nil {
		return err
	}
	if err := m.execute(ctx, models.ScanRequest{Raw: command, OutputFile: output}); err != nil {
		return err
	}

	flags, ok := validators.TrailingIPv4(command)
	if !ok || flags == "" {
		m.out.Promptf("Cannot add to speed dial automatically (no direct IP found).")
		return nil
	}
	return m.offerSpeedDial(flags)
}

// offerSpeedDial asks whether to keep flags under a new title
func (m *Menu) offerSpeedDial(flags string) error {
	keep, err := m.yesNo("Add last command to speed dial? (y/n): ")
	if err != nil || !keep {
		return err
	}
	return m.storeSpeedDial("Name this scan for speed dial: ", flags)
}

func (m *Menu) storeSpeedDial(prompt, flags string) error {
	cfg := m.repo.Config()
	for {
		title, err := m.ask(prompt)
		if err != nil {
			return err
		}
		if err := cfg.AddSpeedDial(title, flags); err != nil {
			m.out.Errorf("Invalid title or title already exists.")
			continue
		}
		break
	}
	if m.save() {
		m.out.Successf("\nSpeed dial saved.")
	}
	return nil
}

func (m *Menu) speedDial(ctx context.Context) error {
	m.out.Println("\nSPEED DIAL MENU: Quick access to saved commands.")
	for {
		entries := m.repo.Config().SpeedDial
		if len(entries) == 0 {
			m.out.Errorf("\nNo speed dial options.")
		} else {
			lines := make([]string, len(entries))
			for i, e := range entries {
				lines[i] = fmt.Sprintf("%s: %s", e.Title, e.Flags)
			}
			m.out.Menu("Saved", lines)
		}

		option, err := m.ask(speedDialPrompt)
		if err != nil {
			return err
		}
		switch strings.ToLower(option) {
		case "0":
			return nil
		case "a":
			err = m.addSpeedDial()
		case "e":
			err = m.eraseSpeedDial()
		default:
			n, ok := parseChoice(option, len(entries))
			if !ok {
				m.out.Errorf("Invalid choice.")
				continue
			}
			err = m.runSpeedDial(ctx, entries[n-1])
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) addSpeedDial() error {
	var flags string
	for flags == "" {
		var err error
		if flags, err = m.ask("\nEnter flags/options (no target):\n-> "); err != nil {
			return err
		}
		if validators.CheckRawCommand(flags) != nil {
			m.out.Errorf("Potential command injection detected.")
			flags = ""
		}
	}
	return m.storeSpeedDial("\nEnter a title:\n-> ", flags)
}

func (m *Menu) eraseSpeedDial() error {
	cfg := m.repo.Config()
	if len(cfg.SpeedDial) == 0 {
		return nil
	}
	answer, err := m.ask("\nEnter number to delete or 0 to cancel:\n-> ")
	if err != nil || answer == "0" {
		return err
	}
	n, convErr := strconv.Atoi(answer)
	if convErr != nil {
		m.out.Errorf("Invalid input.")
		return nil
	}
	if _, err := cfg.RemoveSpeedDial(n - 1); err != nil {
		m.out.Errorf("Invalid number.")
		return nil
	}
	if m.save() {
		m.out.Successf("\nDeleted speed dial %d.", n)
	}
	return nil
}

func (m *Menu) runSpeedDial(ctx context.Context, entry models.SpeedDialEntry) error {
	target, err := m.target()
	if err != nil {
		return err
	}
	output, err := m.outputFile()
	if err != nil {
		return err
	}
	return m.execute(ctx, models.ScanRequest{Flags: entry.Flags, Target: target, OutputFile: output})
}

// save writes the configuration and reports whether it succeeded
func (m *Menu) save() bool {
	if err := m.repo.SaveConfig(); err != nil {
		m.out.Errorf("Unable to save configuration: %v", err)
		return false
	}
	return true
}
