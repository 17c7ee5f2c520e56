package cli

import (
	"context"
	"log/slog"
	"os"
	goruntime "runtime"

	"github.com/alecthomas/kong"
	"github.com/nxtscape/nxbuild/internal/buildctx"
	"github.com/nxtscape/nxbuild/internal/config"
	"github.com/nxtscape/nxbuild/internal/notify"
	"github.com/nxtscape/nxbuild/internal/paths"
	"github.com/nxtscape/nxbuild/internal/pipeline"
	"github.com/nxtscape/nxbuild/internal/stages"
)

// Environment variable holding the Slack incoming webhook URL.
const slackWebhookEnv = "NXTSCAPE_SLACK_WEBHOOK_URL"

// Represents the 'nxbuild build' command.
type BuildCmd struct {
	Config             string `short:"c" type:"path" placeholder:"PATH" help:"Load configuration from a YAML file."`
	Clean              bool   `short:"C" help:"Clean build artifacts before building."`
	GitSetup           bool   `short:"g" help:"Set up git and check out the pinned Chromium tag."`
	ApplyPatches       bool   `short:"p" help:"Apply the patch series and copy resources."`
	Build              bool   `short:"b" help:"Configure and compile."`
	Sign               bool   `short:"s" help:"Sign and notarize the app."`
	Package            bool   `short:"P" help:"Create the DMG package."`
	Arch               string `short:"a" enum:"arm64,x64" default:"arm64" help:"Target architecture."`
	BuildType          string `short:"t" enum:"debug,release" default:"debug" help:"Build type."`
	ChromiumSrc        string `short:"S" type:"path" placeholder:"PATH" help:"Path to the Chromium source directory."`
	SlackNotifications bool   `short:"n" help:"Enable Slack notifications."`
}

// Executes the build command.
//
// Resolves run parameters from flags, the optional config file, and
// defaults, constructs the execution context, and runs the pipeline. The
// returned error reflects the terminal outcome: nil on success, the stage
// fault on failure, and [pipeline.ErrInterrupted] on interruption.
func (c *BuildCmd) Run(ctx context.Context, kongCtx *kong.Context) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return err
	}

	doc, err := c.loadConfig()
	if err != nil {
		return err
	}

	params := config.Resolve(rootDir, c.cliValues(explicitFlags(kongCtx)), doc)
	for _, warning := range params.Warnings {
		slog.Warn(warning)
	}

	bctx, err := buildctx.New(buildctx.Options{
		RootDir:      params.RootDir,
		ChromiumSrc:  params.ChromiumSrc,
		Architecture: params.Architecture,
		BuildType:    params.BuildType,
		Platform:     platformFor(goruntime.GOOS),
		ApplyPatches: params.ApplyPatches,
		Sign:         params.Sign,
		Package:      params.Package,
		Build:        params.Build,
		Metadata:     buildctx.DefaultMetadata(),
	})
	if err != nil {
		return err
	}

	slog.Info("nxtscape build",
		"root", bctx.RootDir(),
		"chromium_src", bctx.ChromiumSrc(),
		"chromium", bctx.ChromiumVersion(),
		"nxtscape", bctx.ProductVersion(),
		"arch", bctx.Architecture(),
		"type", bctx.BuildType(),
	)

	orch := pipeline.New(bctx, c.notifier(params),
		pipeline.Gated(stages.NewClean(), params.Clean),
		pipeline.Gated(stages.NewGitSetup(), params.GitSetup),
		pipeline.Gated(stages.NewApplyPatches(), params.ApplyPatches),
		pipeline.Gated(stages.NewBuild(params.GNFlagsFile), params.Build),
		pipeline.Gated(stages.NewSign(), params.Sign),
		pipeline.Gated(stages.NewPackage(), params.Package),
	)

	result := orch.Run(ctx)
	switch result.Outcome {
	case pipeline.OutcomeInterrupted:
		return pipeline.ErrInterrupted
	case pipeline.OutcomeFailed:
		return result.Fault
	}
	return nil
}

// Loads the config file named by --config, or the default config file when
// it exists. Returns nil when no config applies.
func (c *BuildCmd) loadConfig() (*config.Document, error) {
	path := c.Config
	if path == "" {
		if _, err := os.Stat(paths.ConfigFile()); err != nil {
			return nil, nil
		}
		path = paths.ConfigFile()
	}

	slog.Debug("loading config", "path", path)
	return config.Load(path)
}

// Translates the parsed flags into resolver input.
//
// The explicitly-set flag names from the parse trace let the resolver
// apply config booleans only as fallback for flags the user left alone.
func (c *BuildCmd) cliValues(set map[string]bool) config.CLI {
	return config.CLI{
		Clean:        config.BoolFlag{Value: c.Clean, Set: set["clean"]},
		GitSetup:     config.BoolFlag{Value: c.GitSetup, Set: set["git-setup"]},
		ApplyPatches: config.BoolFlag{Value: c.ApplyPatches, Set: set["apply-patches"]},
		Build:        config.BoolFlag{Value: c.Build, Set: set["build"]},
		Sign:         config.BoolFlag{Value: c.Sign, Set: set["sign"]},
		Package:      config.BoolFlag{Value: c.Package, Set: set["package"]},
		Slack:        config.BoolFlag{Value: c.SlackNotifications, Set: set["slack-notifications"]},
		Architecture: config.StringFlag{Value: c.Arch, Set: set["arch"]},
		BuildType:    config.StringFlag{Value: c.BuildType, Set: set["build-type"]},
		ChromiumSrc:  c.ChromiumSrc,
	}
}

// Returns the notifier for this run.
//
// Slack notifications require a webhook URL from the environment; when it
// is missing the run proceeds with notifications disabled.
func (c *BuildCmd) notifier(params config.Parameters) notify.Notifier {
	if !params.Slack {
		return notify.Nop{}
	}

	url := os.Getenv(slackWebhookEnv)
	if url == "" {
		slog.Warn("slack notifications enabled but no webhook configured", "env", slackWebhookEnv)
		return notify.Nop{}
	}

	return notify.NewSlack(url)
}

// Returns the flag names explicitly present on the command line.
func explicitFlags(kongCtx *kong.Context) map[string]bool {
	set := make(map[string]bool)
	for _, path := range kongCtx.Path {
		if path.Flag != nil {
			set[path.Flag.Name] = true
		}
	}
	return set
}

// Maps the host OS to the build platform.
func platformFor(goos string) buildctx.Platform {
	if goos == "windows" {
		return buildctx.PlatformWindows
	}
	return buildctx.PlatformMac
}
