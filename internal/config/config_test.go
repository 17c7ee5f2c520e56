package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
build:
  type: release
  architecture: x64
steps:
  clean: true
  git_setup: false
  build: true
notifications:
  slack: true
gn_flags:
  file: gn/flags.gn
paths:
  chromium_src: /src/chromium
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if doc.Build.Type != "release" {
		t.Fatalf("build.type = %q, want release", doc.Build.Type)
	}
	if doc.Build.Architecture != "x64" {
		t.Fatalf("build.architecture = %q, want x64", doc.Build.Architecture)
	}
	if doc.Steps.Clean == nil || !*doc.Steps.Clean {
		t.Fatal("steps.clean should be true")
	}
	if doc.Steps.GitSetup == nil || *doc.Steps.GitSetup {
		t.Fatal("steps.git_setup should be present and false")
	}
	if doc.Steps.Sign != nil {
		t.Fatal("steps.sign should be absent")
	}
	if doc.Notifications.Slack == nil || !*doc.Notifications.Slack {
		t.Fatal("notifications.slack should be true")
	}
	if doc.GNFlags.File != "gn/flags.gn" {
		t.Fatalf("gn_flags.file = %q", doc.GNFlags.File)
	}
	if doc.Paths.ChromiumSrc != "/src/chromium" {
		t.Fatalf("paths.chromium_src = %q", doc.Paths.ChromiumSrc)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Steps.Clean != nil || doc.Build.Type != "" {
		t.Fatalf("empty document should leave everything unset: %+v", doc)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "malformed yaml",
			input: "build: [unclosed",
		},
		{
			name:  "unknown section",
			input: "bulid:\n  type: release\n",
		},
		{
			name:  "unknown step",
			input: "steps:\n  compile: true\n",
		},
		{
			name:  "wrongly typed step",
			input: "steps:\n  clean: definitely\n",
		},
		{
			name:  "invalid architecture",
			input: "build:\n  architecture: riscv\n",
		},
		{
			name:  "invalid build type",
			input: "build:\n  type: profiling\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("err = %v, want ErrConfig", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Build.Type != "release" {
		t.Fatalf("build.type = %q, want release", doc.Build.Type)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig", err)
	}
}
