package stages

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nxtscape/nxbuild/internal/buildctx"
)

// Removes the build output directory for the selected architecture.
type Clean struct{}

func NewClean() *Clean { return &Clean{} }

func (s *Clean) Name() string { return "clean" }

func (s *Clean) Description() string { return "cleaning build artifacts" }

func (s *Clean) Run(ctx context.Context, bctx *buildctx.Context) error {
	out := bctx.OutDir()

	if _, err := os.Stat(out); os.IsNotExist(err) {
		slog.Info("nothing to clean", "dir", out)
		return nil
	}

	slog.Info("removing build output", "dir", out)
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("removing %s: %w", out, err)
	}

	return nil
}
