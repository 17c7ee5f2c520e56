package stages

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Creates a repository with one commit and the given lightweight tags.
func initTaggedRepo(t *testing.T, tags ...string) *git.Repository {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("chromium\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("README"); err != nil {
		t.Fatal(err)
	}

	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "nxbuild", Email: "build@nxtscape.test", When: time.Now()},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, tag := range tags {
		if _, err := repo.CreateTag(tag, hash, nil); err != nil {
			t.Fatal(err)
		}
	}
	return repo
}

func TestResolveTagFound(t *testing.T) {
	repo := initTaggedRepo(t, "137.0.7151.69")

	if _, err := resolveTag(repo, "137.0.7151.69"); err != nil {
		t.Fatalf("resolveTag = %v, want nil", err)
	}
}

func TestResolveTagMissingListsNewest(t *testing.T) {
	repo := initTaggedRepo(t, "137.0.7151.55", "137.0.7151.68", "136.0.7103.92")

	_, err := resolveTag(repo, "137.0.7151.69")
	if err == nil {
		t.Fatal("expected an error for a missing tag")
	}

	msg := err.Error()
	if !strings.Contains(msg, "tag 137.0.7151.69 not found") {
		t.Fatalf("error %q does not name the missing tag", msg)
	}
	if !strings.Contains(msg, "137.0.7151.68, 137.0.7151.55, 136.0.7103.92") {
		t.Fatalf("error %q does not list available tags newest first", msg)
	}
}

func TestNewestTagsCapped(t *testing.T) {
	var tags []string
	for i := 1; i <= 12; i++ {
		tags = append(tags, fmt.Sprintf("100.0.%d", i))
	}
	repo := initTaggedRepo(t, tags...)

	got := newestTags(repo, 10)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if got[0] != "100.0.12" || got[9] != "100.0.3" {
		t.Fatalf("got = %v, want newest ten in descending order", got)
	}
}

func TestVersionLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"136.0.7103.92", "137.0.7151.68", true},
		{"137.0.7151.68", "137.0.7151.55", false},
		{"99.0.1", "100.0.1", true},
		{"1.2", "1.2.1", true},
		{"1.2.3", "1.2.3", false},
	}

	for _, tt := range tests {
		if got := versionLess(tt.a, tt.b); got != tt.want {
			t.Fatalf("versionLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
