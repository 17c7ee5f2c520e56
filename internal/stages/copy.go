package stages

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nxtscape/nxbuild/internal/paths"
)

// Copies the contents of src into dest, preserving the relative layout.
//
// A missing source directory is not an error: the project may ship no
// resources, in which case there is nothing to stage.
func copyTree(src, dest string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		slog.Debug("no resources to copy", "dir", src)
		return nil
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, paths.DefaultDirMode)
		}

		slog.Debug("copy", "src", path, "dest", target)
		return copyFile(path, target)
	})
}

// Copies a single regular file, preserving its permission bits.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
