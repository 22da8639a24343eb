package bundler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/oshokin/update-bundler/internal/archive"
	"github.com/oshokin/update-bundler/internal/domain/bundle"
	"github.com/oshokin/update-bundler/internal/logger"
)

// installerProvider zips every Windows installer with the binary at the root.
type installerProvider struct {
	rebuilder Rebuilder
}

func (p *installerProvider) Package(ctx context.Context, settings bundle.Settings, bundles []bundle.Bundle) ([]string, error) {
	installers, err := collectInstallers(ctx, p.rebuilder, settings, bundles)
	if err != nil {
		return nil, err
	}

	// One archive per installer, in the order they were collected.
	archives := make([]string, 0, len(installers))

	for _, source := range installers {
		source, err = filepath.Abs(source)
		if err != nil {
			return nil, fmt.Errorf("resolve installer path: %w", err)
		}

		// Updater builds land in "<family>-updater", the archive goes next to the regular build.
		job := archive.Job{
			Source:      source,
			Destination: RewritePath(source),
			Format:      archive.FormatZip,
		}

		logger.InfoKV(ctx, "Bundling", "archive", job.Destination, "source", job.Source)

		written, werr := archive.Write(job)
		if werr != nil {
			return nil, fmt.Errorf("zip update bundle %s: %w", source, werr)
		}

		archives = append(archives, written)
	}

	return archives, nil
}
