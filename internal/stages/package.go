package stages

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nxtscape/nxbuild/internal/buildctx"
	"github.com/nxtscape/nxbuild/internal/paths"
	"github.com/nxtscape/nxbuild/internal/toolchain"
)

// Volume name shown when the DMG is mounted.
const dmgVolumeName = "Nxtscape"

// Packages the app bundle into a distributable DMG.
type Package struct{}

func NewPackage() *Package { return &Package{} }

func (s *Package) Name() string { return "package" }

func (s *Package) Description() string { return "creating DMG package" }

func (s *Package) Run(ctx context.Context, bctx *buildctx.Context) error {
	if bctx.Platform() != buildctx.PlatformMac {
		return fmt.Errorf("packaging is only supported for macOS builds")
	}

	app := bctx.ProductAppPath()
	if _, err := os.Stat(app); err != nil {
		return fmt.Errorf("app bundle not found at %s (did the build stage run?)", app)
	}

	if !bctx.Sign() {
		slog.Warn("packaging a bundle this run did not sign", "app", app)
	}

	if err := os.MkdirAll(bctx.DistDir(), paths.DefaultDirMode); err != nil {
		return fmt.Errorf("creating dist dir: %w", err)
	}

	dmg := filepath.Join(bctx.DistDir(),
		fmt.Sprintf("Nxtscape_%s_%s.dmg", bctx.ProductVersion(), bctx.Architecture()))

	slog.Info("creating package", "dmg", dmg)
	_, err := toolchain.Run(ctx, toolchain.Options{},
		"hdiutil", "create",
		"-volname", dmgVolumeName,
		"-srcfolder", app,
		"-ov", "-format", "UDZO",
		dmg)
	if err != nil {
		return fmt.Errorf("creating dmg: %w", err)
	}

	slog.Info("package ready", "dmg", dmg)
	return nil
}
