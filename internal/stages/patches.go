package stages

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/nxtscape/nxbuild/internal/buildctx"
	"github.com/nxtscape/nxbuild/internal/paths"
	"github.com/nxtscape/nxbuild/internal/toolchain"
)

// Name of the downloaded Sparkle archive inside the staging directory.
const sparkleArchive = "sparkle.tar.xz"

// Stages the Sparkle framework, applies the Nxtscape patch series to the
// Chromium tree, and copies project resources into it.
type ApplyPatches struct{}

func NewApplyPatches() *ApplyPatches { return &ApplyPatches{} }

func (s *ApplyPatches) Name() string { return "apply-patches" }

func (s *ApplyPatches) Description() string { return "applying patches and copying resources" }

func (s *ApplyPatches) Run(ctx context.Context, bctx *buildctx.Context) error {
	if err := stageSparkle(ctx, bctx); err != nil {
		return fmt.Errorf("staging sparkle: %w", err)
	}

	if err := applySeries(ctx, bctx); err != nil {
		return fmt.Errorf("applying patches: %w", err)
	}

	if err := copyTree(bctx.ResourcesDir(), bctx.ChromiumSrc()); err != nil {
		return fmt.Errorf("copying resources: %w", err)
	}

	return nil
}

// Downloads and unpacks the pinned Sparkle release into the vendor
// directory, replacing any previous copy.
func stageSparkle(ctx context.Context, bctx *buildctx.Context) error {
	dir := bctx.SparkleDir()

	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
		return err
	}

	slog.Info("downloading sparkle", "url", bctx.SparkleURL())
	if _, err := toolchain.Run(ctx, toolchain.Options{Dir: dir},
		"curl", "-L", "-o", sparkleArchive, bctx.SparkleURL()); err != nil {
		return err
	}

	if _, err := toolchain.Run(ctx, toolchain.Options{Dir: dir},
		"tar", "-xf", sparkleArchive); err != nil {
		return err
	}

	return os.Remove(filepath.Join(dir, sparkleArchive))
}

// Applies every *.patch file from the project's patches directory to the
// Chromium tree, in lexical order.
func applySeries(ctx context.Context, bctx *buildctx.Context) error {
	series, err := filepath.Glob(filepath.Join(bctx.PatchesDir(), "*.patch"))
	if err != nil {
		return err
	}
	if len(series) == 0 {
		slog.Info("no patches found", "dir", bctx.PatchesDir())
		return nil
	}
	sort.Strings(series)

	for _, patch := range series {
		slog.Info("applying patch", "patch", filepath.Base(patch))
		if _, err := toolchain.Run(ctx, toolchain.Options{Dir: bctx.ChromiumSrc()},
			"git", "apply", patch); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(patch), err)
		}
	}

	return nil
}
