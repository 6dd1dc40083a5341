package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()

	assert.Equal(t, `\w \$ `, cfg.Prompt)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, 64, cfg.MaxScriptDepth)
	assert.Empty(t, cfg.EventLog)
	assert.Empty(t, cfg.MetricsTextfilePath())

	transcript, err := cfg.OpenTranscript()
	assert.Nil(t, err)
	assert.Nil(t, transcript)
}

func TestConfiguration_OpenTranscript(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := &Configuration{configFs: fs, configDir: "/etc/minish", Transcript: "session.cast"}
	assert.Nil(t, afero.WriteFile(fs, "/etc/minish/session.cast", []byte("old recording"), 0600))

	fd, err := cfg.OpenTranscript()
	assert.Nil(t, err)
	fd.WriteString("new")
	fd.Close()

	contents, err := afero.ReadFile(fs, "/etc/minish/session.cast")
	assert.Nil(t, err)
	assert.Equal(t, "new", string(contents))
}

func TestParse(t *testing.T) {
	cases := map[string]struct {
		yaml    string
		wantErr string
	}{
		"valid": {
			yaml: "prompt: '> '\ncolor: never\nmax_script_depth: 3\n",
		},
		"unknown field": {
			yaml:    "prompt: '> '\ncolor: never\nmax_script_depth: 3\nhistory: true\n",
			wantErr: "history",
		},
		"bad color": {
			yaml:    "prompt: '> '\ncolor: rainbow\nmax_script_depth: 3\n",
			wantErr: "color",
		},
		"depth too small": {
			yaml:    "prompt: '> '\ncolor: never\nmax_script_depth: 0\n",
			wantErr: "max_script_depth",
		},
		"blank prompt": {
			yaml:    "prompt: ''\ncolor: never\nmax_script_depth: 3\n",
			wantErr: "prompt",
		},
		"blank env file": {
			yaml:    "prompt: '> '\ncolor: never\nmax_script_depth: 3\nenv_files: ['']\n",
			wantErr: "env_files",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if tc.wantErr == "" {
				assert.Nil(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestParse_keepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("prompt: '> '\n"))
	assert.Nil(t, err)

	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, Default().Color, cfg.Color)
	assert.Equal(t, Default().MaxScriptDepth, cfg.MaxScriptDepth)
}

func TestConfiguration_Resolve(t *testing.T) {
	cfg := &Configuration{configDir: "/etc/minish"}

	assert.Equal(t, "/etc/minish/events.log", cfg.Resolve("events.log"))
	assert.Equal(t, "/var/log/events.log", cfg.Resolve("/var/log/events.log"))
	assert.Equal(t, "events.log", (&Configuration{}).Resolve("events.log"))
}
