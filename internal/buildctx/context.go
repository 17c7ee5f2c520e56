package buildctx

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

var ErrContext = errors.New("invalid build context")

// Target platform for the build.
//
// The platform selects the app bundle naming convention. It is a
// construction-time parameter; there are no post-construction overrides.
type Platform int

const (
	PlatformMac Platform = iota
	PlatformWindows
)

const (
	macChromiumApp = "Chromium.app"
	macProductApp  = "Nxtscape.app"
	winChromiumApp = "chrome.exe"
	winProductApp  = "BrowserOS.exe"
)

// Controls context construction.
type Options struct {
	RootDir      string   // Project root directory.
	ChromiumSrc  string   // Chromium source tree, already resolved by config.
	Architecture string   // Target architecture ("arm64" or "x64").
	BuildType    string   // Build type ("debug" or "release").
	Platform     Platform // Target platform. Defaults to PlatformMac.
	ApplyPatches bool     // Whether the patch stage should run its patch series.
	Sign         bool     // Whether the packaged app should be signed.
	Package      bool     // Whether a distributable package should be produced.
	Build        bool     // Whether the compile stage should run.
	Metadata     Metadata // Version pins for this build.
}

// An immutable snapshot of everything a stage needs.
//
// Constructed once per run, after config resolution. Stages read the context
// and operate on the filesystem and external tools, but never feed anything
// back into it: all fields are unexported and exposed through accessors, and
// derived paths are computed from the stored fields on demand.
type Context struct {
	rootDir      string
	chromiumSrc  string
	architecture string
	buildType    string
	platform     Platform
	applyPatches bool
	sign         bool
	pkg          bool
	build        bool
	meta         Metadata
	startTime    time.Time
}

// Constructs a context from resolved run parameters.
//
// Captures the start time once, atomically with the rest of the fields.
// Fails only if required path inputs are structurally invalid; whether the
// external tools a stage needs actually exist is that stage's own
// precondition to check.
func New(opts Options) (*Context, error) {
	if opts.RootDir == "" {
		return nil, fmt.Errorf("%w: empty root directory", ErrContext)
	}
	if opts.ChromiumSrc == "" {
		return nil, fmt.Errorf("%w: empty chromium source directory", ErrContext)
	}

	return &Context{
		rootDir:      opts.RootDir,
		chromiumSrc:  opts.ChromiumSrc,
		architecture: opts.Architecture,
		buildType:    opts.BuildType,
		platform:     opts.Platform,
		applyPatches: opts.ApplyPatches,
		sign:         opts.Sign,
		pkg:          opts.Package,
		build:        opts.Build,
		meta:         opts.Metadata,
		startTime:    time.Now(),
	}, nil
}

// Returns the project root directory.
func (c *Context) RootDir() string { return c.rootDir }

// Returns the Chromium source tree directory.
func (c *Context) ChromiumSrc() string { return c.chromiumSrc }

// Returns the target architecture ("arm64" or "x64").
func (c *Context) Architecture() string { return c.architecture }

// Returns the build type ("debug" or "release").
func (c *Context) BuildType() string { return c.buildType }

// Returns the target platform.
func (c *Context) Platform() Platform { return c.platform }

// Whether the patch stage should apply the patch series.
func (c *Context) ApplyPatches() bool { return c.applyPatches }

// Whether the built app should be signed.
func (c *Context) Sign() bool { return c.sign }

// Whether a distributable package should be produced.
func (c *Context) Package() bool { return c.pkg }

// Whether the compile stage should run.
func (c *Context) Build() bool { return c.build }

// Returns the pinned upstream Chromium version tag.
func (c *Context) ChromiumVersion() string { return c.meta.ChromiumVersion }

// Returns the Nxtscape product version.
func (c *Context) ProductVersion() string { return c.meta.ProductVersion }

// Returns the time the context was constructed.
//
// Used only for elapsed-time reporting; stages must not re-derive it.
func (c *Context) StartTime() time.Time { return c.startTime }

// Returns the GN output directory for this architecture,
// rooted in the Chromium source tree (e.g., "out/Default_arm64").
func (c *Context) OutDir() string {
	return filepath.Join(c.chromiumSrc, "out", "Default_"+c.architecture)
}

// Returns the directory the Sparkle framework is vendored into.
func (c *Context) SparkleDir() string {
	return filepath.Join(c.chromiumSrc, "third_party", "sparkle")
}

// Returns the download URL for the pinned Sparkle release.
func (c *Context) SparkleURL() string {
	v := c.meta.SparkleVersion
	return fmt.Sprintf("https://github.com/sparkle-project/Sparkle/releases/download/%s/Sparkle-%s.tar.xz", v, v)
}

// Returns the name of the app bundle produced by the upstream build.
func (c *Context) ChromiumAppName() string {
	if c.platform == PlatformWindows {
		return winChromiumApp
	}
	return macChromiumApp
}

// Returns the name of the renamed product app bundle.
func (c *Context) ProductAppName() string {
	if c.platform == PlatformWindows {
		return winProductApp
	}
	return macProductApp
}

// Returns the path to the product app bundle inside the output directory.
func (c *Context) ProductAppPath() string {
	return filepath.Join(c.OutDir(), c.ProductAppName())
}

// Returns the directory the patch series is read from.
func (c *Context) PatchesDir() string {
	return filepath.Join(c.rootDir, "patches")
}

// Returns the directory project resources are staged from.
func (c *Context) ResourcesDir() string {
	return filepath.Join(c.rootDir, "resources")
}

// Returns the directory final packages are written to.
func (c *Context) DistDir() string {
	return filepath.Join(c.rootDir, "dist")
}
