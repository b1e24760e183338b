package mapper

import (
	"Mapper/internal/files"
	"fmt"
	"path/filepath"
)

// prepareOutputDir creates the directory for the normal output file. The
// scanner does not create it.
func prepareOutputDir(outputFile string) error {
	if outputFile == "" {
		return nil
	}
	dir := filepath.Dir(outputFile)
	if dir == "." || files.Exists(dir) {
		return nil
	}
	if err := files.CreateDir(dir); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}
