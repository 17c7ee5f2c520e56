package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// A parsed build configuration file.
//
// Every section is optional. Absent sections and keys leave the
// corresponding CLI or default values untouched during resolution, which is
// why the per-step and notification booleans are pointers: a nil pointer
// means "not mentioned", not "false".
type Document struct {
	Build struct {
		Type         string `yaml:"type"`
		Architecture string `yaml:"architecture"`
	} `yaml:"build"`
	Steps struct {
		Clean        *bool `yaml:"clean"`
		GitSetup     *bool `yaml:"git_setup"`
		ApplyPatches *bool `yaml:"apply_patches"`
		Build        *bool `yaml:"build"`
		Sign         *bool `yaml:"sign"`
		Package      *bool `yaml:"package"`
	} `yaml:"steps"`
	Notifications struct {
		Slack *bool `yaml:"slack"`
	} `yaml:"notifications"`
	GNFlags struct {
		File string `yaml:"file"`
	} `yaml:"gn_flags"`
	Paths struct {
		ChromiumSrc string `yaml:"chromium_src"`
	} `yaml:"paths"`
}

// Loads and validates a build configuration file.
//
// The document is validated against the embedded schema before decoding, so
// typos in section or key names and wrongly-typed values fail up front with
// an [ErrConfig] error rather than being silently ignored.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return Parse(data)
}

// Parses and validates a build configuration document.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	if err := validate(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return &doc, nil
}
