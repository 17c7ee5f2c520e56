package stages

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nxtscape/nxbuild/internal/buildctx"
	"github.com/nxtscape/nxbuild/internal/toolchain"
)

// Configures the GN output directory and compiles the browser.
//
// The GN argument set is derived from the context's build type and
// architecture, optionally extended by a flags file resolved during
// configuration. This is the only stage that receives input beyond the
// execution context.
type Build struct {
	gnFlagsFile string
}

// Creates the build stage. gnFlagsFile may be empty.
func NewBuild(gnFlagsFile string) *Build {
	return &Build{gnFlagsFile: gnFlagsFile}
}

func (s *Build) Name() string { return "build" }

func (s *Build) Description() string { return "configuring and building Nxtscape" }

func (s *Build) Run(ctx context.Context, bctx *buildctx.Context) error {
	src := bctx.ChromiumSrc()

	outRel, err := filepath.Rel(src, bctx.OutDir())
	if err != nil {
		return fmt.Errorf("resolving output dir: %w", err)
	}

	args, err := s.gnArgs(bctx)
	if err != nil {
		return err
	}

	slog.Info("configuring", "out", outRel, "args", args)
	if _, err := toolchain.Run(ctx, toolchain.Options{Dir: src},
		"gn", "gen", outRel, "--args="+strings.Join(args, " ")); err != nil {
		return fmt.Errorf("configuring: %w", err)
	}

	slog.Info("compiling", "out", outRel)
	if _, err := toolchain.Run(ctx, toolchain.Options{Dir: src, Stream: true},
		"autoninja", "-C", outRel, "chrome"); err != nil {
		return fmt.Errorf("compiling: %w", err)
	}

	return nil
}

// Assembles the GN argument list for this build.
//
// Base arguments come from the build type and architecture; the optional
// flags file is appended afterwards so it can override them.
func (s *Build) gnArgs(bctx *buildctx.Context) ([]string, error) {
	var args []string

	switch bctx.BuildType() {
	case "release":
		args = append(args, "is_debug=false", "is_official_build=true", "symbol_level=0")
	default:
		args = append(args, "is_debug=true", "symbol_level=1")
	}

	args = append(args, fmt.Sprintf("target_cpu=%q", bctx.Architecture()))

	if s.gnFlagsFile != "" {
		extra, err := readGNFlags(s.gnFlagsFile)
		if err != nil {
			return nil, fmt.Errorf("reading gn flags file: %w", err)
		}
		args = append(args, extra...)
	}

	return args, nil
}

// Reads one GN argument per line, skipping blanks and # comments.
func readGNFlags(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var flags []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		flags = append(flags, line)
	}

	return flags, nil
}
