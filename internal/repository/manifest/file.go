package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/update-bundler/internal/domain/bundle"
)

// Manifest is the on-disk shape of the bundle list.
type Manifest struct {
	// Bundles are the results of the packaging stage in build order.
	Bundles []bundle.Bundle `yaml:"bundles"`
}

// Actor identifies the machine and user that produced a report.
type Actor struct {
	// Hostname is the machine name of the build host.
	Hostname string `yaml:"hostname"`
	// Username is the system user running the bundler.
	Username string `yaml:"username"`
}

// Report is the on-disk shape of the produced archive list.
type Report struct {
	// Target is the triple the archives were produced for.
	Target string `yaml:"target,omitempty"`
	// BuiltBy is the build host and user, when they could be detected.
	BuiltBy *Actor `yaml:"built_by,omitempty"`
	// Archives are the update archive paths in processing order.
	Archives []string `yaml:"archives"`
}

// ErrNotFound is returned when the manifest file does not exist.
var ErrNotFound = errors.New("bundle manifest not found")

const reportFilePermissions = 0o644

// Load reads the bundle list from path.
func Load(_ context.Context, path string) ([]bundle.Bundle, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return nil, fmt.Errorf("read bundle manifest: %w", err)
	}

	var m Manifest
	if err = yaml.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("decode bundle manifest: %w", err)
	}

	return m.Bundles, nil
}

// SaveReport writes report to path, creating missing parent directories.
func SaveReport(_ context.Context, path string, report *Report) error {
	if report.Archives == nil {
		report.Archives = []string{}
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	path = filepath.Clean(path)
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	if err = os.WriteFile(path, data, reportFilePermissions); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
