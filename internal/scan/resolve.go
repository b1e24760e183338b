package scan

import (
	"Mapper/internal/files"
	"Mapper/internal/nmap"
	"Mapper/pkg/models"
	"Mapper/pkg/validators"
	"fmt"
	"path/filepath"
	"strings"
)

// Resolver turns a ScanRequest into scanner arguments
type Resolver struct {
	ScriptsDir string
	Timing     string
}

// ScriptPath checks that plugin is still installed and returns its path
func (r Resolver) ScriptPath(plugin string) (string, error) {
	if plugin == "" || filepath.Base(plugin) != plugin {
		return "", fmt.Errorf("%w: %q", ErrPluginNotFound, plugin)
	}
	path := filepath.Join(r.ScriptsDir, plugin)
	if !files.Exists(path) {
		return "", fmt.Errorf("%w: %s not found at %s", ErrPluginNotFound, plugin, path)
	}
	return path, nil
}

// Args validates req and builds its argument list. Raw commands are checked for
// shell metacharacters before they are split on whitespace.
func (r Resolver) Args(req models.ScanRequest) ([]string, error) {
	switch {
	case req.IsRaw():
		return r.rawArgs(req)
	case req.IsSpeedDial():
		return r.speedDialArgs(req)
	default:
		return r.pluginArgs(req)
	}
}

func (r Resolver) rawArgs(req models.ScanRequest) ([]string, error) {
	if err := validators.CheckRawCommand(req.Raw); err != nil {
		return nil, err
	}
	fields := strings.Fields(req.Raw)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return nmap.NewCommand(fields...).
		OutputNormal(req.OutputFile).
		ToArgList(), nil
}

func (r Resolver) speedDialArgs(req models.ScanRequest) ([]string, error) {
	if err := validators.CheckRawCommand(req.Flags); err != nil {
		return nil, err
	}
	if err := validators.ValidateTarget(req.Target); err != nil {
		return nil, err
	}
	return nmap.NewCommand().
		Target(req.Target, validators.IsTargetFile(req.Target)).
		Arg(strings.Fields(req.Flags)...).
		OutputNormal(req.OutputFile).
		ToArgList(), nil
}

func (r Resolver) pluginArgs(req models.ScanRequest) ([]string, error) {
	if err := validators.ValidateTarget(req.Target); err != nil {
		return nil, err
	}
	if p := strings.ToLower(strings.TrimSpace(req.Ports)); p != "" && p != models.PortsAll {
		if err := validators.ValidatePorts(p); err != nil {
			return nil, err
		}
	}
	script, err := r.ScriptPath(req.Plugin)
	if err != nil {
		return nil, err
	}
	return nmap.NewCommand().
		Timing(r.Timing).
		Ports(req.Ports).
		Script(script).
		OutputNormal(req.OutputFile).
		Target(req.Target, validators.IsTargetFile(req.Target)).
		ToArgList(), nil
}
