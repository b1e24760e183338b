package menu

import (
	"Mapper/internal/mapper"
	"Mapper/internal/nmap"
	"Mapper/internal/scan"
	"Mapper/pkg/helpers"
	"Mapper/pkg/models"
	"Mapper/pkg/validators"
	"context"
	"errors"
	"fmt"
	"strings"
)

func (m *Menu) allCategories(ctx context.Context) error {
	categories := m.repo.Catalog().Categories()
	m.out.Menu("ALL CATEGORIES", categories)

	choice, err := m.ask("\nChoose a category by number or '0' back:\n-> ")
	if err != nil || choice == "0" {
		return err
	}
	n, ok := parseChoice(choice, len(categories))
	if !ok {
		m.out.Errorf("Invalid category choice.")
		return nil
	}
	return m.category(ctx, categories[n-1])
}

func (m *Menu) category(ctx context.Context, name string) error {
	plugins, _ := m.repo.Catalog().Plugins(name)
	if len(plugins) == 0 {
		m.out.Errorf("\nNo scripts in %s.", name)
		return nil
	}
	m.out.Menu(name, plugins)

	choice, err := m.ask(fmt.Sprintf("\nChoose a script from %s by number or '0' back: ", name))
	if err != nil || choice == "0" {
		return err
	}
	n, ok := parseChoice(choice, len(plugins))
	if !ok {
		m.out.Errorf("Invalid choice.")
		return nil
	}
	return m.runPlugin(ctx, plugins[n-1])
}

func (m *Menu) search(ctx context.Context) error {
	for {
		var results []string
		for len(results) == 0 {
			term, err := m.ask("\nEnter a search term (max 8 chars):\n-> ")
			if err != nil {
				return err
			}
			if results = m.repo.Catalog().Search(term); len(results) == 0 {
				m.out.Errorf("\nNO RESULTS")
			}
		}
		m.out.Menu("Search Results", results)

		again := false
		for !again {
			choice, err := m.ask("\nChoose script by number, 's' to search again, '0' to menu:\n-> ")
			if err != nil {
				return err
			}
			switch strings.ToLower(choice) {
			case "s":
				again = true
			case "0":
				return nil
			default:
				if n, ok := parseChoice(choice, len(results)); ok {
					return m.runPlugin(ctx, results[n-1])
				}
				m.out.Errorf("\nInvalid choice. Please try again.")
			}
		}
	}
}

func (m *Menu) runPlugin(ctx context.Context, plugin string) error {
	m.describe(plugin)

	target, err := m.target()
	if err != nil {
		return err
	}
	ports, err := m.ports()
	if err != nil {
		return err
	}
	output, err := m.outputFile()
	if err != nil {
		return err
	}

	req := models.ScanRequest{Plugin: plugin, Target: target, Ports: ports, OutputFile: output}
	if err := m.execute(ctx, req); err != nil {
		return err
	}
	if !m.repo.Config().Settings.SpeedDialAsk {
		return nil
	}
	return m.offerSpeedDial(m.pluginFlags(plugin, ports))
}

// pluginFlags is the speed dial form of a plugin scan. The script is named
// rather than given by path.
func (m *Menu) pluginFlags(plugin, ports string) string {
	return nmap.NewCommand().
		Timing(m.repo.Config().Scanner.Timing).
		Ports(ports).
		Script(helpers.DisplayName(plugin)).
		String()
}

func (m *Menu) describe(plugin string) {
	desc, err := m.repo.Describe(plugin)
	if err != nil {
		m.out.Errorf("Unable to read the script file: %v", err)
		return
	}
	m.out.Println(fmt.Sprintf("\n%s:", plugin))
	m.out.Infof("%s", desc)
}

func (m *Menu) target() (string, error) {
	for {
		target, err := m.ask("\nEnter an IP address, host name, CIDR range or file:\n-> ")
		if err != nil {
			return "", err
		}
		if validators.ValidateTarget(target) != nil {
			m.out.Errorf("\nNo valid target or file found.")
			continue
		}
		if validators.IsTargetFile(target) {
			m.fileLocated(target)
		} else {
			m.out.Successf("\nValid target entered.")
		}
		return target, nil
	}
}

// fileLocated reports on a target file. Entries the scanner may still accept,
// such as address ranges, only produce a warning.
func (m *Menu) fileLocated(path string) {
	targets, err := scan.ReadTargetFile(path)
	if err != nil {
		m.out.Promptf("\nFile located, but %v", err)
		return
	}
	m.out.Successf("\nFile located, %d targets.", len(targets))
}

func (m *Menu) ports() (string, error) {
	for {
		m.out.Promptf("\nEnter port option:")
		m.out.Promptf("- leave blank for default")
		m.out.Promptf("- 'all' for all ports")
		m.out.Promptf("- single port/list e.g. '8080' or '8080,443,25'")
		ports, err := m.ask("-> ")
		if err != nil {
			return "", err
		}
		ports = strings.ToLower(ports)
		if ports == "" || ports == models.PortsAll || validators.ValidatePorts(ports) == nil {
			return ports, nil
		}
		m.out.Errorf("\nInvalid port option")
	}
}

// outputFile asks for an output file name as the settings direct. A blank name
// picks a timestamped default.
func (m *Menu) outputFile() (string, error) {
	s := m.repo.Config().Settings
	if s.OutputAsk {
		want, err := m.yesNo("\nDo you want to output to file? (y/n): ")
		if err != nil || !want {
			return "", err
		}
	} else if !s.OutputDefault {
		return "", nil
	}

	name, err := m.ask("\nEnter output file (leave blank for default): ")
	if err != nil {
		return "", err
	}
	if name == "" {
		name = helpers.DefaultOutputFile(m.now())
		m.out.Successf("\nDefault output file: %s", name)
	}
	return name, nil
}

// execute runs req and walks through viewing and reporting. Scan failures are
// shown and swallowed. Only input errors are returned.
func (m *Menu) execute(ctx context.Context, req models.ScanRequest) error {
	res, err := m.repo.Scan(ctx, req)
	if err != nil {
		m.scanFailed(err)
		return nil
	}

	viewed, err := m.view(res)
	if err != nil {
		return err
	}
	return m.report(res, viewed)
}

func (m *Menu) view(res *mapper.Result) (bool, error) {
	s := m.repo.Config().Settings
	show := s.ScreenOutputDefault
	if s.ScreenOutputAsk {
		var err error
		if show, err = m.yesNo("\nDo you want to view the output? (y/n): "); err != nil {
			return false, err
		}
	}
	if !show {
		return false, nil
	}
	return true, m.repo.View(res)
}

func (m *Menu) report(res *mapper.Result, viewed bool) error {
	s := m.repo.Config().Settings
	want := s.ReportDefault
	if s.ReportAsk {
		var err error
		if want, err = m.yesNo("Do you want to generate a penetration testing report? (y/n): "); err != nil {
			return err
		}
	}
	if !want {
		return nil
	}
	if err := m.repo.Report(res, viewed); err != nil {
		m.out.Errorf("Unable to write report: %v", err)
	}
	return nil
}

func (m *Menu) scanFailed(err error) {
	switch {
	case errors.Is(err, validators.ErrInjectionRejected):
		m.out.Errorf("Potential command injection detected. Aborting.")
	case errors.Is(err, context.Canceled):
		m.out.Errorf("\nScan interrupted.")
	case errors.Is(err, scan.ErrProcessLaunchFailed):
		m.out.Errorf("Unable to start the scanner: %v", err)
	default:
		m.out.Errorf("%v", err)
	}
}
