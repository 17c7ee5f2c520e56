package stages

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nxtscape/nxbuild/internal/buildctx"
	"github.com/nxtscape/nxbuild/internal/toolchain"
)

// Environment variables consumed by the signing stage.
const (
	signIdentityEnv  = "NXTSCAPE_SIGN_IDENTITY"
	notaryProfileEnv = "NXTSCAPE_NOTARY_PROFILE"
)

// Code-signs the built app bundle and, when a notary profile is
// configured, notarizes and staples it.
type Sign struct{}

func NewSign() *Sign { return &Sign{} }

func (s *Sign) Name() string { return "sign" }

func (s *Sign) Description() string { return "signing and notarizing application" }

func (s *Sign) Run(ctx context.Context, bctx *buildctx.Context) error {
	if bctx.Platform() != buildctx.PlatformMac {
		return fmt.Errorf("signing is only supported for macOS builds")
	}

	app := bctx.ProductAppPath()
	if _, err := os.Stat(app); err != nil {
		return fmt.Errorf("app bundle not found at %s (did the build stage run?)", app)
	}

	identity := os.Getenv(signIdentityEnv)
	if identity == "" {
		return fmt.Errorf("signing identity not set: export %s", signIdentityEnv)
	}

	slog.Info("signing", "app", app)
	_, err := toolchain.Run(ctx, toolchain.Options{},
		"codesign", "--force", "--deep", "--options", "runtime", "--sign", identity, app)
	if err != nil {
		return fmt.Errorf("signing: %w", err)
	}

	profile := os.Getenv(notaryProfileEnv)
	if profile == "" {
		slog.Info("no notary profile configured, skipping notarization")
		return nil
	}

	return s.notarize(ctx, bctx, app, profile)
}

// Submits the signed bundle for notarization and staples the ticket.
//
// notarytool only accepts archives, so the bundle is zipped into the
// output directory first.
func (s *Sign) notarize(ctx context.Context, bctx *buildctx.Context, app, profile string) error {
	archive := filepath.Join(bctx.OutDir(), "notarize.zip")

	if _, err := toolchain.Run(ctx, toolchain.Options{},
		"ditto", "-c", "-k", "--keepParent", app, archive); err != nil {
		return fmt.Errorf("archiving for notarization: %w", err)
	}
	defer os.Remove(archive)

	slog.Info("notarizing, this may take a while", "archive", archive)
	if _, err := toolchain.Run(ctx, toolchain.Options{Stream: true},
		"xcrun", "notarytool", "submit", archive, "--keychain-profile", profile, "--wait"); err != nil {
		return fmt.Errorf("notarizing: %w", err)
	}

	if _, err := toolchain.Run(ctx, toolchain.Options{},
		"xcrun", "stapler", "staple", app); err != nil {
		return fmt.Errorf("stapling: %w", err)
	}

	return nil
}
