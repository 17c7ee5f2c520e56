package stages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/nxtscape/nxbuild/internal/buildctx"
	"github.com/nxtscape/nxbuild/internal/toolchain"
)

// Checks out the pinned Chromium tag and syncs its dependencies.
//
// Tag fetching and checkout are done in-process with go-git against the
// existing Chromium clone. Dependency syncing is delegated to gclient,
// which owns the DEPS format and cannot be replicated.
type GitSetup struct{}

func NewGitSetup() *GitSetup { return &GitSetup{} }

func (s *GitSetup) Name() string { return "git-setup" }

func (s *GitSetup) Description() string { return "Git setup and Chromium source" }

func (s *GitSetup) Run(ctx context.Context, bctx *buildctx.Context) error {
	src := bctx.ChromiumSrc()
	tag := bctx.ChromiumVersion()

	repo, err := git.PlainOpen(src)
	if err != nil {
		return fmt.Errorf("opening chromium checkout at %s: %w", src, err)
	}

	slog.Info("fetching tags", "remote", "origin")
	if err := fetchTags(ctx, repo); err != nil {
		return fmt.Errorf("fetching tags: %w", err)
	}

	hash, err := resolveTag(repo, tag)
	if err != nil {
		return err
	}

	slog.Info("checking out tag", "tag", tag, "commit", hash.String()[:8])

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return fmt.Errorf("checking out %s: %w", tag, err)
	}

	slog.Info("syncing dependencies, this may take a while")
	_, err = toolchain.Run(ctx, toolchain.Options{Dir: src, Stream: true},
		"gclient", "sync", "-D", "--no-history", "--shallow")
	if err != nil {
		return fmt.Errorf("syncing dependencies: %w", err)
	}

	return nil
}

// Resolves the pinned tag to a commit.
//
// When the pin is missing, the error lists the newest tags the checkout
// has so the operator can see how far the pin has drifted.
func resolveTag(repo *git.Repository, tag string) (*plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision("refs/tags/" + tag))
	if err == nil {
		return hash, nil
	}

	newest := newestTags(repo, 10)
	if len(newest) == 0 {
		return nil, fmt.Errorf("tag %s not found: %w", tag, err)
	}

	slog.Error("tag not found", "tag", tag, "newest", strings.Join(newest, ", "))
	return nil, fmt.Errorf("tag %s not found, newest available: %s: %w",
		tag, strings.Join(newest, ", "), err)
}

// Returns up to n tag names, newest first in version order.
func newestTags(repo *git.Repository, n int) []string {
	iter, err := repo.Tags()
	if err != nil {
		return nil
	}

	var names []string
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})

	sort.Slice(names, func(i, j int) bool { return versionLess(names[j], names[i]) })
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// Reports whether version a orders before version b, comparing
// dot-separated fields numerically where possible.
func versionLess(a, b string) bool {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr != nil || berr != nil {
			if as[i] != bs[i] {
				return as[i] < bs[i]
			}
			continue
		}
		if an != bn {
			return an < bn
		}
	}
	return len(as) < len(bs)
}

// Force-fetches all tags from origin.
//
// An up-to-date remote is not an error; the checkout proceeds against the
// tags already present.
func fetchTags(ctx context.Context, repo *git.Repository) error {
	err := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: "origin",
		Tags:       git.AllTags,
		Force:      true,
		RefSpecs:   []gitcfg.RefSpec{"+refs/tags/*:refs/tags/*"},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return err
	}
	return nil
}
