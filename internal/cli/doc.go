// Parses flags and drives a build run for the nxbuild tool.
//
// The build command accepts a toggle per pipeline stage, the target
// architecture and build type, an optional YAML config file, a Chromium
// source override, and a Slack notification toggle:
//
//	-c, --config               Load configuration from a YAML file.
//	-C, --clean                Clean build artifacts before building.
//	-g, --git-setup            Set up git and check out the pinned tag.
//	-p, --apply-patches        Apply the patch series and copy resources.
//	-b, --build                Configure and compile.
//	-s, --sign                 Sign and notarize the app.
//	-P, --package              Create the DMG package.
//	-a, --arch                 Target architecture (arm64, x64).
//	-t, --build-type           Build type (debug, release).
//	-S, --chromium-src         Path to the Chromium source directory.
//	-n, --slack-notifications  Enable Slack notifications.
//
// Global flags override build-time defaults set via linker flags. After
// parsing, the global logger is reconfigured to reflect the final level and
// verbosity before the pipeline starts. The process exits 0 on success, 1
// on a stage fault, and 130 on interruption.
package cli
