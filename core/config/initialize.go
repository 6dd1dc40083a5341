package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir, leaving an existing
// configuration untouched.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	return InitializeFs(afero.NewOsFs(), dir, logger)
}

// InitializeFs is Initialize on an arbitrary filesystem.
func InitializeFs(fs afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	switch _, err := fs.Stat(configPath); {
	case err == nil:
		logger.Printf("Configuration %q already exists, skipping.\n", configPath)
	case os.IsNotExist(err):
		logger.Printf("Writing configuration %q\n", configPath)
		if err := afero.WriteFile(fs, configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("checking %q: %w", configPath, err)
	}

	return LoadFs(fs, dir)
}
