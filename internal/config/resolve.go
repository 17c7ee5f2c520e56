package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (

	// Architecture used when neither the CLI nor the config chooses one.
	DefaultArchitecture = "arm64"

	// Build type used when neither the CLI nor the config chooses one.
	DefaultBuildType = "debug"

	// Directory under the project root used when no valid source
	// directory override is supplied.
	DefaultChromiumSrcName = "chromium_src"
)

// A boolean CLI flag together with whether it was explicitly set
// on the command line.
type BoolFlag struct {
	Value bool
	Set   bool
}

// A string CLI flag together with whether it was explicitly set
// on the command line.
type StringFlag struct {
	Value string
	Set   bool
}

// The CLI-supplied values feeding resolution.
type CLI struct {
	Clean        BoolFlag
	GitSetup     BoolFlag
	ApplyPatches BoolFlag
	Build        BoolFlag
	Sign         BoolFlag
	Package      BoolFlag
	Slack        BoolFlag
	Architecture StringFlag
	BuildType    StringFlag
	ChromiumSrc  string // Source tree override; empty when not provided.
}

// The fully resolved parameter set for one run.
//
// Built once per invocation and discarded after context construction.
type Parameters struct {
	RootDir      string
	ChromiumSrc  string
	Architecture string
	BuildType    string
	Clean        bool
	GitSetup     bool
	ApplyPatches bool
	Build        bool
	Sign         bool
	Package      bool
	Slack        bool
	GNFlagsFile  string   // Supplementary GN flags file, consumed by the build stage only.
	Warnings     []string // Non-fatal resolution notes (e.g. skipped override paths).
}

// Merges CLI values, an optional config document, and built-in defaults
// into one parameter set.
//
// Precedence is explicit CLI flag > config value > default, with two
// exceptions. Booleans from the config act as a fallback only: they apply
// when the corresponding flag was not set on the command line, so explicit
// CLI intent is never overridden. The source directory must exist on disk
// to win; an override pointing at a missing path is skipped with a recorded
// warning instead of an error, falling through to the next candidate.
//
// Resolution reads the filesystem only for existence checks and never
// mutates its inputs. A nil document resolves as if every section were
// absent.
func Resolve(rootDir string, cli CLI, doc *Document) Parameters {
	if doc == nil {
		doc = &Document{}
	}

	p := Parameters{
		RootDir:      rootDir,
		Architecture: resolveChoice(cli.Architecture, doc.Build.Architecture, DefaultArchitecture),
		BuildType:    resolveChoice(cli.BuildType, doc.Build.Type, DefaultBuildType),
		Clean:        resolveBool(cli.Clean, doc.Steps.Clean),
		GitSetup:     resolveBool(cli.GitSetup, doc.Steps.GitSetup),
		ApplyPatches: resolveBool(cli.ApplyPatches, doc.Steps.ApplyPatches),
		Build:        resolveBool(cli.Build, doc.Steps.Build),
		Sign:         resolveBool(cli.Sign, doc.Steps.Sign),
		Package:      resolveBool(cli.Package, doc.Steps.Package),
		Slack:        resolveBool(cli.Slack, doc.Notifications.Slack),
		GNFlagsFile:  doc.GNFlags.File,
	}

	p.ChromiumSrc = p.resolveChromiumSrc(cli.ChromiumSrc, doc.Paths.ChromiumSrc)

	return p
}

// Resolves a single boolean parameter.
//
// An explicitly-set CLI flag always wins. Otherwise the config value
// applies when present, and the CLI default (false) when not.
func resolveBool(cli BoolFlag, cfg *bool) bool {
	if cli.Set {
		return cli.Value
	}
	if cfg != nil {
		return *cfg
	}
	return cli.Value
}

// Resolves a single enumerated string parameter.
func resolveChoice(cli StringFlag, cfg, def string) string {
	if cli.Set {
		return cli.Value
	}
	if cfg != "" {
		return cfg
	}
	if cli.Value != "" {
		return cli.Value
	}
	return def
}

// Resolves the Chromium source directory.
//
// A CLI-supplied path wins when it exists on disk. A config path is the
// next candidate, also existence-checked. Candidates that fail the check
// are recorded as warnings, and the computed default under the project
// root is used as the final fallback. The default is not existence-checked;
// the git stage fails with its own precondition when the tree is missing.
func (p *Parameters) resolveChromiumSrc(cliPath, cfgPath string) string {
	if cliPath != "" {
		if dirExists(cliPath) {
			return cliPath
		}
		p.warnf("provided chromium source does not exist, ignoring: %s", cliPath)
	}

	if cfgPath != "" {
		if dirExists(cfgPath) {
			return cfgPath
		}
		p.warnf("configured chromium source does not exist, ignoring: %s", cfgPath)
	}

	return filepath.Join(p.RootDir, DefaultChromiumSrcName)
}

// Records a non-fatal resolution warning.
func (p *Parameters) warnf(format string, args ...any) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}

// Whether the given path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
