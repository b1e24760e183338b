package scan

import (
	"Mapper/internal/files"
	"Mapper/pkg/validators"
	"fmt"
	"os"
	"strings"
)

// ReadTargetFile returns the distinct targets listed in a target file, in file
// order. Blank lines and lines starting with # are skipped.
func ReadTargetFile(path string) ([]string, error) {
	lines, err := files.FileLinesToSlice(path)
	if err != nil {
		return nil, fmt.Errorf("unable to parse file %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(lines))
	targets := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		targets = append(targets, line)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: %s holds no targets", validators.ErrInvalidTarget, path)
	}
	if err := validators.ValidateScope(targets); err != nil {
		return targets, err
	}
	return targets, nil
}

// WriteTargetFile writes a comma separated target list to a new file in dir,
// for passing to the scanner with -iL. The caller removes the file.
func WriteTargetFile(dir, list string) (string, error) {
	var targets []string
	for _, t := range strings.Split(list, ",") {
		if t = strings.TrimSpace(t); t != "" {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		return "", fmt.Errorf("%w: empty target list", validators.ErrInvalidTarget)
	}
	if err := validators.ValidateScope(targets); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(dir, "mapper-targets-*.txt")
	if err != nil {
		return "", err
	}
	path := f.Name()
	f.Close()

	if err := files.WriteFile(path, targets); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
