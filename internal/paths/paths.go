package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "nxbuild"

	// File name of the default build configuration.
	configName = "build.yaml"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755
)

// Path to the directory for user configuration files.
//
//	Linux:   $XDG_CONFIG_HOME/nxbuild or ~/.config/nxbuild
//	macOS:   ~/Library/Application Support/nxbuild
func Config() string {
	return filepath.Join(xdg.ConfigHome, toolName)
}

// Default path to the build configuration file.
//
// Used when no --config flag is given and the file exists on disk.
//
//	Linux:   $XDG_CONFIG_HOME/nxbuild/build.yaml
//	macOS:   ~/Library/Application Support/nxbuild/build.yaml
func ConfigFile() string {
	return filepath.Join(Config(), configName)
}
