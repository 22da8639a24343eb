package bundler

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/oshokin/update-bundler/internal/domain/bundle"
)

// FindArtifact returns the first path with the given extension among bundles
// of packageType, in bundle order and then path order.
func FindArtifact(bundles []bundle.Bundle, packageType bundle.PackageType, extension string) (string, error) {
	for _, b := range bundles {
		if b.PackageType != packageType {
			continue
		}

		for _, p := range b.Paths {
			if filepath.Ext(p) == "."+extension {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("%w: no %s bundle with a .%s artifact", ErrArtifactNotFound, packageType, extension)
}

// collectInstallers returns the Windows installers to archive. Installers of
// the primary build are reused unless the webview install mode embeds the
// runtime or none were produced, in which case they are rebuilt.
func collectInstallers(
	ctx context.Context,
	rebuilder Rebuilder,
	settings bundle.Settings,
	bundles []bundle.Bundle,
) ([]string, error) {
	if !settings.Windows.WebviewInstallMode.RequiresUpdaterRebuild() {
		var paths []string

		for _, b := range bundles {
			if b.PackageType.IsWindowsInstaller() {
				paths = append(paths, b.Paths...)
			}
		}

		if len(paths) > 0 {
			return paths, nil
		}
	}

	paths, err := rebuildInstallers(ctx, rebuilder, settings, rebuildFamilies(bundles))
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no Windows installer was produced", ErrArtifactNotFound)
	}

	return paths, nil
}

// rebuildFamilies lists the installer families present in bundles, or every
// family when the primary build produced none.
func rebuildFamilies(bundles []bundle.Bundle) []bundle.InstallerFamily {
	var families []bundle.InstallerFamily

	for _, b := range bundles {
		family, ok := bundle.FamilyOf(b.PackageType)
		if ok && !slices.Contains(families, family) {
			families = append(families, family)
		}
	}

	if len(families) == 0 {
		return bundle.InstallerFamilies()
	}

	return families
}

func rebuildInstallers(
	ctx context.Context,
	rebuilder Rebuilder,
	settings bundle.Settings,
	families []bundle.InstallerFamily,
) ([]string, error) {
	if rebuilder == nil {
		return nil, nil
	}

	var paths []string

	for _, family := range families {
		rebuilt, err := rebuilder.Rebuild(ctx, settings, family)
		if err != nil {
			return nil, fmt.Errorf("rebuild %s installers: %w", family.PackageType, err)
		}

		paths = append(paths, rebuilt...)
	}

	return paths, nil
}
