package bundle

// InstallerFamily names the output folders of one Windows installer toolchain.
type InstallerFamily struct {
	// PackageType is the bundle type the toolchain produces.
	PackageType PackageType
	// OutputFolder is the folder of the regular build.
	OutputFolder string
	// UpdaterFolder is the folder of the build made for the update channel.
	UpdaterFolder string
}

// UpdaterSuffix is appended to OutputFolder to get UpdaterFolder.
const UpdaterSuffix = "-updater"

// installerFamilies is ordered; rebuilds of all families follow this order.
//
//nolint:gochecknoglobals // Fixed table of toolchain conventions.
var installerFamilies = []InstallerFamily{
	{PackageType: WindowsMsi, OutputFolder: "msi", UpdaterFolder: "msi" + UpdaterSuffix},
	{PackageType: Nsis, OutputFolder: "nsis", UpdaterFolder: "nsis" + UpdaterSuffix},
}

// InstallerFamilies returns a copy of the Windows installer family table.
func InstallerFamilies() []InstallerFamily {
	return append([]InstallerFamily(nil), installerFamilies...)
}

// FamilyOf returns the installer family of t.
func FamilyOf(t PackageType) (InstallerFamily, bool) {
	for _, f := range installerFamilies {
		if f.PackageType == t {
			return f, true
		}
	}

	return InstallerFamily{}, false
}
