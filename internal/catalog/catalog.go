package catalog

import (
	"Mapper/internal/files"
	"Mapper/pkg/helpers"
	"Mapper/pkg/logger"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrPluginDirectoryUnavailable is logged when the plugin directory cannot be listed
var ErrPluginDirectoryUnavailable = errors.New("plugin directory unavailable")

// MaxSearchTerm is the longest search term honoured
const MaxSearchTerm = 8

const primarySeparator = "-"

type matchKind int

const (
	prefix matchKind = iota
	substring
)

// Rule assigns a plugin to a reserved category when its name starts with or
// contains one of Patterns.
type Rule struct {
	Category string
	Kind     matchKind
	Patterns []string
}

func (r Rule) matches(name string) bool {
	for _, p := range r.Patterns {
		switch r.Kind {
		case prefix:
			if strings.HasPrefix(name, p) {
				return true
			}
		case substring:
			if strings.Contains(name, p) {
				return true
			}
		}
	}
	return false
}

// Reserved category names. They are always present in a Catalog.
const (
	SSL       = "SSL"
	SMB       = "SMB"
	SSH       = "SSH"
	RDP       = "RDP"
	Database  = "DATABASE"
	Vuln      = "VULN"
	Brute     = "BRUTE"
	FTP       = "FTP"
	RPC       = "RPC"
	Mainframe = "MAINFRAME"
)

// Rules is evaluated in order. Each reserved category takes a name at most once.
var Rules = []Rule{
	{Category: SSL, Kind: prefix, Patterns: []string{"ssl"}},
	{Category: SMB, Kind: prefix, Patterns: []string{"smb"}},
	{Category: SSH, Kind: prefix, Patterns: []string{"ssh"}},
	{Category: RDP, Kind: prefix, Patterns: []string{"rdp"}},
	{Category: Mainframe, Kind: prefix, Patterns: []string{
		"tn3270", "nwg-tn3270", "cics", "nwg-cics", "tso", "nwg-tso",
		"vtam", "nwg-vtam", "lu", "nwg-lu", "db2", "nwg-db2", "ims", "nwg-ims",
	}},
	{Category: Database, Kind: prefix, Patterns: []string{"oracle", "mysql", "mssql", "ms-sql", "pgsql", "db2"}},
	{Category: Vuln, Kind: substring, Patterns: []string{"vuln"}},
	{Category: Brute, Kind: substring, Patterns: []string{"brute"}},
	{Category: FTP, Kind: substring, Patterns: []string{"ftp"}},
	{Category: RPC, Kind: substring, Patterns: []string{"rpc"}},
}

// ReservedCategories returns the ten reserved names in rule order
func ReservedCategories() []string {
	names := make([]string, 0, len(Rules))
	for _, r := range Rules {
		names = append(names, r.Category)
	}
	return names
}

// Catalog maps category names to plugin names. It is read-only once built.
type Catalog struct {
	categories []string
	buckets    map[string][]string
	reserved   map[string]bool
}

// PrimaryCategory is the part of a name before the first separator
func PrimaryCategory(name string) string {
	before, _, _ := strings.Cut(name, primarySeparator)
	return before
}

// Build classifies plugin names. The primary prefix pass and the reserved rule
// pass are independent, so a name can land in several categories.
func Build(names []string) *Catalog {
	c := &Catalog{
		buckets:  make(map[string][]string),
		reserved: make(map[string]bool, len(Rules)),
	}
	for _, r := range Rules {
		c.reserved[r.Category] = true
		c.buckets[r.Category] = []string{}
	}

	for _, name := range names {
		c.add(PrimaryCategory(name), name)
	}

	for _, name := range names {
		for _, r := range Rules {
			if r.matches(name) {
				c.add(r.Category, name)
			}
		}
	}

	c.categories = make([]string, 0, len(c.buckets))
	for category, members := range c.buckets {
		sort.Strings(members)
		c.categories = append(c.categories, category)
	}
	sort.Strings(c.categories)
	return c
}

func (c *Catalog) add(category, name string) {
	for _, existing := range c.buckets[category] {
		if existing == name {
			return
		}
	}
	c.buckets[category] = append(c.buckets[category], name)
}

// Load lists dir and builds a Catalog from it. A directory that cannot be read
// degrades to the reserved categories only; the error is returned for logging.
func Load(dir string) (*Catalog, error) {
	names, err := files.ListDir(dir)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrPluginDirectoryUnavailable, dir, err)
		logger.Warnf("%v", err)
		return Build(nil), err
	}
	c := Build(names)
	logger.Infof("Loaded %d plugins into %d categories from %s", len(names), c.Len(), dir)
	return c, nil
}

// Categories returns category names in order
func (c *Catalog) Categories() []string {
	return append([]string{}, c.categories...)
}

// Reserved returns the reserved category names in catalog order
func (c *Catalog) Reserved() []string {
	var out []string
	for _, name := range c.categories {
		if c.reserved[name] {
			out = append(out, name)
		}
	}
	return out
}

// Plugins returns the members of a category and whether it exists
func (c *Catalog) Plugins(category string) ([]string, bool) {
	members, ok := c.buckets[category]
	if !ok {
		return nil, false
	}
	return append([]string{}, members...), true
}

// Len returns the number of categories
func (c *Catalog) Len() int {
	return len(c.categories)
}

// Search returns plugins whose names contain term, in category order and without
// repeats. Terms longer than MaxSearchTerm are cut.
func (c *Catalog) Search(term string) []string {
	term = helpers.Truncate(term, MaxSearchTerm)
	seen := make(map[string]bool)
	var results []string
	for _, category := range c.categories {
		for _, name := range c.buckets[category] {
			if seen[name] || !strings.Contains(name, term) {
				continue
			}
			seen[name] = true
			results = append(results, name)
		}
	}
	return results
}
