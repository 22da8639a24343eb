package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteZip stores source as the only entry of a zip at destination.
// The entry is named after the source base name and carries mode 0755.
func WriteZip(source, destination string) (string, error) {
	// Creating the destination truncates it, so it must not be the source.
	if err := checkDistinct(source, destination); err != nil {
		return "", err
	}

	src, err := os.Open(filepath.Clean(source))
	if err != nil {
		return "", fmt.Errorf("open source file: %w", err)
	}
	defer src.Close() //nolint:errcheck // Read-only handle.

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat source file: %w", err)
	}

	if info.IsDir() {
		return "", fmt.Errorf("zip source %s: is a directory", source)
	}

	dst, err := create(destination)
	if err != nil {
		return "", err
	}

	zw := zip.NewWriter(dst)
	err = finish(dst, writeZipEntry(zw, src, info), zw)

	if err != nil {
		return "", err
	}

	return destination, nil
}

func writeZipEntry(zw *zip.Writer, src io.Reader, info os.FileInfo) error {
	//nolint:exhaustruct // Sizes and CRC are filled in by the writer.
	header := &zip.FileHeader{
		Name:     info.Name(),
		Method:   zip.Store,
		Modified: info.ModTime(),
	}
	header.SetMode(entryMode)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("create zip entry: %w", err)
	}

	if _, err = io.Copy(w, src); err != nil {
		return fmt.Errorf("copy %s into zip: %w", info.Name(), err)
	}

	return nil
}
