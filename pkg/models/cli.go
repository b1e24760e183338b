package models

// Globals are the flags shared by every sub-command
type Globals struct {
	ConfigFile string `name:"config" help:"YAML configuration file" default:"config.yaml" type:"path"`
	LogFile    string `name:"log-file" help:"Path to log file or directory for logging all output"`
	Debug      bool   `name:"debug" help:"Enable debug logging"`
	NoColor    bool   `name:"no-color" help:"Disable coloured output"`
	Binary     string `name:"nmap" help:"Scanner binary (overrides config)"`
	ScriptsDir string `name:"scripts-dir" help:"Plugin script directory (overrides config)" type:"path"`
}
