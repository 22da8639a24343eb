package bundle

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// WebviewInstallType selects how the Windows installer provides the webview runtime.
type WebviewInstallType string

const (
	// WebviewSkip does not install the runtime.
	WebviewSkip WebviewInstallType = "skip"
	// WebviewDownloadBootstrapper downloads the bootstrapper at install time.
	WebviewDownloadBootstrapper WebviewInstallType = "downloadBootstrapper"
	// WebviewEmbedBootstrapper embeds the bootstrapper in the installer.
	WebviewEmbedBootstrapper WebviewInstallType = "embedBootstrapper"
	// WebviewOfflineInstaller embeds the full offline runtime installer.
	WebviewOfflineInstaller WebviewInstallType = "offlineInstaller"
	// WebviewFixedRuntime ships a fixed runtime from Path.
	WebviewFixedRuntime WebviewInstallType = "fixedRuntime"
)

// WebviewInstallMode is the webview runtime strategy of the Windows installers.
type WebviewInstallMode struct {
	// Type is the strategy; empty means WebviewDownloadBootstrapper.
	Type WebviewInstallType `yaml:"type"`
	// Silent runs the runtime installer without UI.
	Silent bool `yaml:"silent"`
	// Path is the runtime location for WebviewFixedRuntime.
	Path string `yaml:"path,omitempty"`
}

// RequiresUpdaterRebuild reports whether installers must be rebuilt for the update channel.
// Embedded runtimes make the primary installers too large to ship as updates.
func (m WebviewInstallMode) RequiresUpdaterRebuild() bool {
	return m.Type == WebviewEmbedBootstrapper || m.Type == WebviewOfflineInstaller
}

// UnmarshalYAML accepts either a bare type name or a mapping.
func (m *WebviewInstallMode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		m.Type = WebviewInstallType(value.Value)
	} else {
		type plain WebviewInstallMode

		var decoded plain
		if err := value.Decode(&decoded); err != nil {
			return err
		}

		*m = WebviewInstallMode(decoded)
	}

	switch m.Type {
	case "":
		m.Type = WebviewDownloadBootstrapper
	case WebviewSkip, WebviewDownloadBootstrapper, WebviewEmbedBootstrapper,
		WebviewOfflineInstaller, WebviewFixedRuntime:
	default:
		return fmt.Errorf("line %d: unknown webview install mode %q", value.Line, m.Type)
	}

	return nil
}

// WindowsSettings groups Windows-specific settings.
type WindowsSettings struct {
	// WebviewInstallMode decides whether installers are rebuilt for updates.
	WebviewInstallMode WebviewInstallMode `yaml:"webview_install_mode"`
}

// Settings is the subset of the build settings update packaging reads.
type Settings struct {
	// Target is the build target triple, e.g. x86_64-pc-windows-msvc.
	Target string `yaml:"target"`
	// Windows holds Windows installer settings.
	Windows WindowsSettings `yaml:"windows"`
}
