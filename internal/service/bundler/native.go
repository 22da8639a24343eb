package bundler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/oshokin/update-bundler/internal/archive"
	"github.com/oshokin/update-bundler/internal/domain/bundle"
	"github.com/oshokin/update-bundler/internal/logger"
)

// nativeProvider stores the single application artifact of macOS or Linux
// as <artifact>.tar.gz next to it.
type nativeProvider struct {
	packageType bundle.PackageType
	extension   string
}

func (p *nativeProvider) Package(ctx context.Context, _ bundle.Settings, bundles []bundle.Bundle) ([]string, error) {
	source, err := FindArtifact(bundles, p.packageType, p.extension)
	if err != nil {
		return nil, err
	}

	if source, err = filepath.Abs(source); err != nil {
		return nil, fmt.Errorf("resolve artifact path: %w", err)
	}

	job := archive.Job{
		Source:      source,
		Destination: source + "." + string(archive.FormatTarGz),
		Format:      archive.FormatTarGz,
	}

	logger.InfoKV(ctx, "Bundling", "archive", job.Destination, "source", job.Source)

	written, err := archive.Write(job)
	if err != nil {
		return nil, fmt.Errorf("compress update directory %s: %w", source, err)
	}

	return []string{written}, nil
}
