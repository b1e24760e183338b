package serializers

import (
	"Mapper/pkg/models"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfigFromYAML reads the configuration file. A missing file yields the
// defaults and os.ErrNotExist so callers can decide whether to say so.
func LoadConfigFromYAML(filePath string) (*models.Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.DefaultConfig(), err
	}

	config := models.DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return models.DefaultConfig(), fmt.Errorf("error parsing config file %s: %w", filePath, err)
	}
	config.ApplyDefaults()
	return config, nil
}

// SaveConfigToYAML rewrites the whole configuration file
func SaveConfigToYAML(filePath string, config *models.Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("error writing config file %s: %w", filePath, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing config file %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filePath)
}
