package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

// Format is the container of an update archive.
type Format string

const (
	// FormatZip is a zip with a single stored entry.
	FormatZip Format = "zip"
	// FormatTarGz is a gzip-compressed tar.
	FormatTarGz Format = "tar.gz"
)

const (
	// dirMode is used for destination parents created on demand.
	dirMode os.FileMode = 0o755
	// entryMode is the mode of the zip entry; installers must stay executable.
	entryMode os.FileMode = 0o755
)

var (
	errUnknownFormat = errors.New("unknown archive format")
	// ErrSameFile is returned when the archive would overwrite its own source.
	ErrSameFile = errors.New("archive destination is the source file")
)

// Job describes one archive to produce.
type Job struct {
	// Source is the installer file or application tree.
	Source string
	// Destination is the archive path.
	Destination string
	// Format selects the writer.
	Format Format
}

// Write produces the archive described by job and returns its path.
func Write(job Job) (string, error) {
	switch job.Format {
	case FormatZip:
		return WriteZip(job.Source, job.Destination)
	case FormatTarGz:
		return WriteTarGz(job.Source, job.Destination)
	default:
		return "", fmt.Errorf("%w: %q", errUnknownFormat, job.Format)
	}
}

// create makes the parents of path and opens it for writing.
func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("create archive file: %w", err)
	}

	return f, nil
}

// checkDistinct fails when source and destination resolve to the same path.
func checkDistinct(source, destination string) error {
	src, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("resolve source path: %w", err)
	}

	dst, err := filepath.Abs(destination)
	if err != nil {
		return fmt.Errorf("resolve destination path: %w", err)
	}

	if src == dst {
		return fmt.Errorf("%w: %s", ErrSameFile, src)
	}

	return nil
}

// finish closes the writers in order and removes the file when anything failed.
func finish(f *os.File, err error, closers ...io.Closer) error {
	var result *multierror.Error
	if err != nil {
		result = multierror.Append(result, err)
	}

	for _, c := range closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			result = multierror.Append(result, fmt.Errorf("finalize archive: %w", cerr))
		}
	}

	if result.ErrorOrNil() == nil {
		if serr := f.Sync(); serr != nil {
			result = multierror.Append(result, fmt.Errorf("flush archive file: %w", serr))
		}
	}

	if cerr := f.Close(); cerr != nil {
		result = multierror.Append(result, fmt.Errorf("close archive file: %w", cerr))
	}

	if result.ErrorOrNil() != nil {
		if rerr := os.Remove(f.Name()); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			result = multierror.Append(result, fmt.Errorf("remove partial archive: %w", rerr))
		}

		if len(result.Errors) == 1 {
			return result.Errors[0]
		}
	}

	return result.ErrorOrNil()
}
