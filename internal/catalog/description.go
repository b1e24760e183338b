package catalog

import (
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	descriptionOpen  = "description = [["
	descriptionClose = "]]"

	descriptionCacheSize = 128
)

// Describer extracts the description block of a plugin script
type Describer struct {
	dir   string
	cache *lru.Cache[string, string]
}

func NewDescriber(dir string) *Describer {
	// Only fails for a non-positive size
	cache, _ := lru.New[string, string](descriptionCacheSize)
	return &Describer{dir: dir, cache: cache}
}

// Describe returns the description of plugin, or "" if the script has none
func (d *Describer) Describe(plugin string) (string, error) {
	if desc, ok := d.cache.Get(plugin); ok {
		return desc, nil
	}
	data, err := os.ReadFile(filepath.Join(d.dir, plugin))
	if err != nil {
		return "", err
	}
	desc := ExtractDescription(string(data))
	d.cache.Add(plugin, desc)
	return desc, nil
}

// ExtractDescription returns the text between the description opener and the
// first closing bracket pair after it.
func ExtractDescription(script string) string {
	start := strings.Index(script, descriptionOpen)
	if start < 0 {
		return ""
	}
	body := script[start+len(descriptionOpen):]
	if end := strings.Index(body, descriptionClose); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
