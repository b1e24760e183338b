package models

import "strings"

// PortsAll selects every port
const PortsAll = "all"

// ScanRequest is one scan as composed by the menu or the CLI. Exactly one of
// Plugin, Raw or Flags is set.
type ScanRequest struct {
	// Plugin is a script file name inside the plugin directory
	Plugin string
	// Raw is a user-composed argument string, without the binary name
	Raw string
	// Flags are stored speed dial flags, run against Target
	Flags string
	// Label names the request in reports and history when no plugin is set
	Label string

	Target     string
	Ports      string
	OutputFile string
}

// IsRaw reports whether the request carries a free-form command
func (r ScanRequest) IsRaw() bool {
	return r.Raw != ""
}

// IsSpeedDial reports whether the request replays stored flags
func (r ScanRequest) IsSpeedDial() bool {
	return r.Flags != "" && r.Raw == "" && r.Plugin == ""
}

// Description is the plugin or command label that goes in the report
func (r ScanRequest) Description() string {
	switch {
	case r.Plugin != "":
		return r.Plugin
	case r.Label != "":
		return r.Label
	case r.Raw != "":
		return strings.TrimSpace(r.Raw)
	default:
		return strings.TrimSpace(r.Flags)
	}
}
