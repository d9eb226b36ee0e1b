package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the content of a YAML settings file.
//
//	func: deploy_empty_subdirs
//	nopause: true
//	border: 40
//	ignore:
//	  - node_modules
//	  - build*
type Settings struct {
	Func    string   `yaml:"func"`
	NoPause *bool    `yaml:"nopause"`
	Border  int      `yaml:"border"`
	Ignore  []string `yaml:"ignore"`
}

// LoadSettings reads and decodes a settings file. Unknown keys are errors.
func LoadSettings(path string) (*Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Usagef("settings file not found: %s", path)
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("permission denied: %s", path)
		}
		return nil, fmt.Errorf("failed to read settings file: %s - %w", path, err)
	}

	return ParseSettings(content, path)
}

// ParseSettings decodes settings from YAML. name is used in error messages.
func ParseSettings(content []byte, name string) (*Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, Usagef("invalid settings file %s: %v", name, err)
	}

	if s.Border < 0 {
		return nil, Usagef("invalid settings file %s: border must not be negative", name)
	}

	return &s, nil
}
