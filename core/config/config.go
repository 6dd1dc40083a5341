package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs  afero.Fs
	configDir string

	Prompt          string   `json:"prompt" validate:"required"`
	Color           string   `json:"color" validate:"oneof=always auto never"`
	MaxScriptDepth  int      `json:"max_script_depth" validate:"gte=1,lte=1024"`
	EventLog        string   `json:"event_log"`
	MetricsTextfile string   `json:"metrics_textfile"`
	EnvFiles        []string `json:"env_files" validate:"dive,required"`
	Transcript      string   `json:"transcript"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Dir returns the directory relative paths in the configuration resolve
// against.
func (c *Configuration) Dir() string {
	if c.configDir == "" {
		return "."
	}
	return c.configDir
}

// Resolve returns name relative to the configuration directory.
func (c *Configuration) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir(), name)
}

// OpenEventLog opens the event log in an append only state. It returns nil if
// event logging is disabled.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, nil
	}
	return c.fs().OpenFile(c.Resolve(c.EventLog), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, os.ErrNotExist
	}
	return c.fs().OpenFile(c.Resolve(c.EventLog), os.O_RDONLY, 0600)
}

// OpenTranscript truncates and opens the session transcript. It returns nil
// if recording is disabled.
func (c *Configuration) OpenTranscript() (afero.File, error) {
	if c.Transcript == "" {
		return nil, nil
	}
	return c.fs().OpenFile(c.Resolve(c.Transcript), os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0600)
}

// MetricsTextfilePath returns the resolved metrics textfile or "" if export is
// disabled.
func (c *Configuration) MetricsTextfilePath() string {
	if c.MetricsTextfile == "" {
		return ""
	}
	return c.Resolve(c.MetricsTextfile)
}

// EnvFilePaths returns the resolved dotenv files.
func (c *Configuration) EnvFilePaths() []string {
	var out []string
	for _, f := range c.EnvFiles {
		out = append(out, c.Resolve(f))
	}
	return out
}

// Default returns the built-in configuration.
func Default() *Configuration {
	out, err := parseOnto(&Configuration{}, defaultConfigData)
	if err != nil {
		// The embedded configuration is checked by tests.
		panic(err)
	}
	return out
}

// Parse decodes and validates a YAML configuration. Fields it leaves out keep
// their built-in values.
func Parse(data []byte) (*Configuration, error) {
	return parseOnto(Default(), data)
}

func parseOnto(out *Configuration, data []byte) (*Configuration, error) {
	if err := yaml.UnmarshalStrict(data, out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
