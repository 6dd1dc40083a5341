package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Load loads the configuration from the directory or file at path.
func Load(path string) (*Configuration, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs loads the configuration from the directory or file at path on fs.
func LoadFs(fs afero.Fs, path string) (*Configuration, error) {
	if stat, err := fs.Stat(path); err == nil && stat.IsDir() {
		path = filepath.Join(path, ConfigurationName)
	}

	configContents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	out, err := Parse(configContents)
	if err != nil {
		return nil, &os.PathError{Op: "load", Path: path, Err: err}
	}
	out.configFs = fs
	out.configDir = filepath.Dir(path)
	return out, nil
}
