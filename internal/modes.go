package internal

import (
	"strconv"
	"sync/atomic"
)

// Output modes for the nxbuild process. A build can bake defaults in via
// ldflags; the CLI flags override them at startup.
var (
	quietMode   atomic.Bool // Suppresses informational log output.
	debugMode   atomic.Bool // Enables debug log output.
	verboseMode atomic.Bool // Adds source locations to log output.
)

// Seeds the output modes from the baked-in defaults.
//
// The rawQuiet, rawDebug, and rawVerbose variables are injected through
// ldflags; unset or malformed values leave the mode disabled.
func init() {
	if v, err := strconv.ParseBool(rawQuiet); err == nil {
		quietMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawDebug); err == nil {
		debugMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawVerbose); err == nil {
		verboseMode.Store(v)
	}
}

// Enables or disables quiet output.
func SetQuiet(enabled bool) {
	quietMode.Store(enabled)
}

// Returns true if quiet output is enabled.
func IsQuiet() bool {
	return quietMode.Load()
}

// Enables or disables debug output.
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

// Returns true if debug output is enabled.
func IsDebug() bool {
	return debugMode.Load()
}

// Enables or disables verbose output.
func SetVerbose(enabled bool) {
	verboseMode.Store(enabled)
}

// Returns true if verbose output is enabled.
func IsVerbose() bool {
	return verboseMode.Load()
}
