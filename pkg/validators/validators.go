package validators

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"regexp"
	"strings"
)

// ErrInjectionRejected is returned for raw commands carrying shell metacharacters
var ErrInjectionRejected = errors.New("potential command injection detected")

// ErrInvalidTarget is returned when a target is neither a scope item nor a file
var ErrInvalidTarget = errors.New("no valid IP address or file found")

// ErrInvalidPorts is returned for port options other than digits and commas
var ErrInvalidPorts = errors.New("invalid port option")

// shellMetacharacters are refused outright on the free-form command path.
var shellMetacharacters = []string{";", "&", ">", "|"}

var portListRegex = regexp.MustCompile(`^[0-9,]+$`)

var trailingIPv4Regex = regexp.MustCompile(`((\d{1,2}|1\d{2}|2[0-4]\d|25[0-5])\.){3}(\d{1,2}|1\d{2}|2[0-4]\d|25[0-5])$`)

// CheckRawCommand rejects a user-composed argument string before it is tokenized.
// The input is never sanitized.
func CheckRawCommand(raw string) error {
	for _, c := range shellMetacharacters {
		if strings.Contains(raw, c) {
			return fmt.Errorf("%w: %q", ErrInjectionRejected, c)
		}
	}
	return nil
}

// TrailingIPv4 reports whether a raw command ends with an IPv4 address and returns
// the command with that address removed.
func TrailingIPv4(raw string) (string, bool) {
	if !trailingIPv4Regex.MatchString(raw) {
		return raw, false
	}
	return strings.TrimSpace(trailingIPv4Regex.ReplaceAllString(raw, "")), true
}

// ValidateTarget accepts an IP, CIDR, bare host or the path of an existing file
// holding one target per line.
func ValidateTarget(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return ErrInvalidTarget
	}
	if IsValidScopeItem(target) {
		return nil
	}
	if IsTargetFile(target) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidTarget, target)
}

// IsTargetFile returns true if target names an existing regular file
func IsTargetFile(target string) bool {
	info, err := os.Stat(target)
	return err == nil && info.Mode().IsRegular()
}

// ValidatePorts accepts a comma separated list of port numbers
func ValidatePorts(ports string) error {
	if !portListRegex.MatchString(ports) {
		return fmt.Errorf("%w: %s", ErrInvalidPorts, ports)
	}
	return nil
}

// ValidateScope checks every entry of a target list
func ValidateScope(scope []string) error {
	for _, target := range scope {
		if !IsValidScopeItem(target) {
			return fmt.Errorf("%w: not a valid IP, CIDR or host: %s", ErrInvalidTarget, target)
		}
	}
	return nil
}

// IsValidScopeItem returns true if str is a valid IP, CIDR, or bare host:port.
func IsValidScopeItem(str string) bool {
	if ValidateIP(str) {
		return true
	}
	if ValidateCIDR(str) {
		return true
	}
	if ValidateBareURL(str) {
		return true
	}
	return false
}

// ValidateIP returns true if addr is a valid IPv4 or IPv6 address.
func ValidateIP(addr string) bool {
	ip := net.ParseIP(addr)
	return ip != nil
}

// ValidateCIDR returns true if cidr is in valid CIDR notation, like "192.168.0.0/24".
func ValidateCIDR(cidr string) bool {
	_, _, err := net.ParseCIDR(cidr)
	return err == nil
}

// ValidateBareURL ensures a string is just a host (domain or IP) plus optional port.
// It rejects any scheme (e.g. "http://") or path (e.g. "/some/path").
// Examples of valid strings: "example.com", "example.com:8080", "192.168.1.10", "localhost".
func ValidateBareURL(hostPort string) bool {
	if strings.Contains(hostPort, "/") {
		return false
	}

	// Prefix with "//" so net/url parses hostPort as the Host field.
	u, err := url.Parse("//" + hostPort)
	if err != nil {
		return false
	}
	if u.Scheme != "" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return false
	}
	if u.Host == "" {
		return false
	}

	host, _, err := net.SplitHostPort(u.Host)
	if err != nil {
		// No port, the entire thing is the host
		host = u.Host
	}
	if host == "" {
		return false
	}

	// Minimal domain check: if not an IP, ensure there's at least one '.' (except "localhost").
	if net.ParseIP(host) == nil {
		if host != "localhost" && !strings.Contains(host, ".") {
			return false
		}
	}
	return true
}
