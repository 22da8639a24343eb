package bundle

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// PackageType identifies the kind of installer or application a bundle holds.
type PackageType string

const (
	// MacOSBundle is a macOS .app directory.
	MacOSBundle PackageType = "app"
	// Dmg is a macOS disk image.
	Dmg PackageType = "dmg"
	// AppImage is a self-contained Linux application image.
	AppImage PackageType = "appimage"
	// Deb is a Debian package.
	Deb PackageType = "deb"
	// Rpm is an RPM package.
	Rpm PackageType = "rpm"
	// WindowsMsi is an MSI installer built with WiX.
	WindowsMsi PackageType = "msi"
	// Nsis is a script-based NSIS installer.
	Nsis PackageType = "nsis"
	// Updater marks the archives produced by this tool.
	Updater PackageType = "updater"
)

var errUnknownPackageType = errors.New("unknown package type")

// PackageTypes returns every known package type.
func PackageTypes() []PackageType {
	return []PackageType{MacOSBundle, Dmg, AppImage, Deb, Rpm, WindowsMsi, Nsis, Updater}
}

// ParsePackageType validates a package type name.
func ParsePackageType(s string) (PackageType, error) {
	t := PackageType(s)
	if !slices.Contains(PackageTypes(), t) {
		return "", fmt.Errorf("%w: %q", errUnknownPackageType, s)
	}

	return t, nil
}

// IsWindowsInstaller reports whether t is one of the Windows installer families.
func (t PackageType) IsWindowsInstaller() bool {
	_, ok := FamilyOf(t)
	return ok
}

// UnmarshalYAML rejects package types outside the closed set.
func (t *PackageType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	parsed, err := ParsePackageType(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}

	*t = parsed

	return nil
}

// Bundle is one result of the packaging stage.
type Bundle struct {
	// PackageType is the kind of artifact the paths point at.
	PackageType PackageType `yaml:"package_type"`
	// Paths lists the produced artifacts in the order they were built.
	Paths []string `yaml:"paths"`
}
