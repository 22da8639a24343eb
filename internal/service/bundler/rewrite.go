package bundler

import (
	"path/filepath"
	"strings"

	"github.com/oshokin/update-bundler/internal/domain/bundle"
)

// RewritePath maps a Windows installer path to its update archive path.
//
// An updater output folder (nsis-updater) is collapsed into the plain family
// folder (nsis), and the installer extension is replaced by "<family>.zip":
// out/nsis-updater/en-US/App.exe becomes out/nsis/en-US/App.nsis.zip.
// Without any family folder in the path the extension becomes ".zip".
func RewritePath(source string) string {
	var (
		segments   = strings.Split(filepath.ToSlash(filepath.Clean(source)), "/")
		bundleName string
	)

	for i, segment := range segments {
		name, collapse, ok := matchOutputFolder(segment)
		if !ok {
			continue
		}

		bundleName = name
		if collapse {
			segments[i] = name
		}
	}

	rewritten := filepath.FromSlash(strings.Join(segments, "/"))

	suffix := ".zip"
	if bundleName != "" {
		suffix = "." + bundleName + suffix
	}

	return strings.TrimSuffix(rewritten, filepath.Ext(rewritten)) + suffix
}

// matchOutputFolder reports the family name of a path segment and whether the
// segment is an updater folder that must be replaced by that name.
func matchOutputFolder(segment string) (string, bool, bool) {
	for _, family := range bundle.InstallerFamilies() {
		switch segment {
		case family.UpdaterFolder:
			return strings.TrimSuffix(segment, bundle.UpdaterSuffix), true, true
		case family.OutputFolder:
			return segment, false, true
		}
	}

	return "", false, false
}
