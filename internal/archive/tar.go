package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// WriteTarGz archives source, a file or a directory tree, under its base name
// into a gzip-compressed tar at destination.
func WriteTarGz(source, destination string) (string, error) {
	source = filepath.Clean(source)

	if _, err := os.Lstat(source); err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}

	dst, err := create(destination)
	if err != nil {
		return "", err
	}

	gw := gzip.NewWriter(dst)
	tw := tar.NewWriter(gw)

	if err = finish(dst, appendTree(tw, source), tw, gw); err != nil {
		return "", err
	}

	return destination, nil
}

// appendTree walks root without following symlinks and writes every entry.
func appendTree(tw *tar.Writer, root string) error {
	base := filepath.Base(root)

	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		name := base
		if rel != "." {
			name = path.Join(base, filepath.ToSlash(rel))
		}

		return appendEntry(tw, p, name, d)
	})
}

func appendEntry(tw *tar.Writer, p, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("stat %s: %w", p, err)
	}

	var link string
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(p); err != nil {
			return fmt.Errorf("read link %s: %w", p, err)
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return fmt.Errorf("tar header for %s: %w", p, err)
	}

	header.Name = name
	if info.IsDir() {
		header.Name += "/"
	}

	if err = tw.WriteHeader(header); err != nil {
		return fmt.Errorf("write tar header for %s: %w", p, err)
	}

	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(filepath.Clean(p))
	if err != nil {
		return fmt.Errorf("open %s: %w", p, err)
	}
	defer f.Close() //nolint:errcheck // Read-only handle.

	if _, err = io.Copy(tw, f); err != nil {
		return fmt.Errorf("copy %s into tar: %w", p, err)
	}

	return nil
}
