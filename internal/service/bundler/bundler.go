package bundler

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"github.com/oshokin/update-bundler/internal/domain/bundle"
	"github.com/oshokin/update-bundler/internal/logger"
)

// Target operating systems with an update packaging routine.
const (
	OSWindows = "windows"
	OSMacOS   = "macos"
	OSLinux   = "linux"
)

// ErrArtifactNotFound is returned when no produced artifact can be packaged.
var ErrArtifactNotFound = errors.New("unable to find project artifact")

// Provider packages the bundles of one target operating system.
type Provider interface {
	Package(ctx context.Context, settings bundle.Settings, bundles []bundle.Bundle) ([]string, error)
}

// Rebuilder builds a Windows installer family again for the update channel.
type Rebuilder interface {
	Rebuild(ctx context.Context, settings bundle.Settings, family bundle.InstallerFamily) ([]string, error)
}

// Bundler dispatches update packaging to the provider of the target OS.
type Bundler struct {
	providers map[string]Provider
	hostOS    string
}

// New creates a Bundler with the Windows, macOS and Linux providers.
func New(rebuilder Rebuilder) *Bundler {
	return &Bundler{
		providers: map[string]Provider{
			OSWindows: &installerProvider{rebuilder: rebuilder},
			OSMacOS:   &nativeProvider{packageType: bundle.MacOSBundle, extension: "app"},
			OSLinux:   &nativeProvider{packageType: bundle.AppImage, extension: "AppImage"},
		},
		hostOS: HostOS(),
	}
}

// Package writes one update archive per artifact and returns their paths in order.
// Targets without a provider produce no archives and no error.
func (b *Bundler) Package(ctx context.Context, settings bundle.Settings, bundles []bundle.Bundle) ([]string, error) {
	targetOS := TargetOS(settings.Target, b.hostOS)
	ctx = logger.WithKV(logger.WithName(ctx, "updater-bundle"), "target_os", targetOS)

	provider, ok := b.providers[targetOS]
	if !ok {
		logger.WarnKV(ctx, "Update packaging is not supported for this platform", "target", settings.Target)
		return []string{}, nil
	}

	return provider.Package(ctx, settings, bundles)
}

// TargetOS returns the OS component of a target triple, or hostOS when the
// triple has none. "darwin" is reported as "macos".
func TargetOS(target, hostOS string) string {
	targetOS := hostOS
	if parts := strings.Split(target, "-"); len(parts) > 2 {
		targetOS = parts[2]
	}

	return strings.ReplaceAll(targetOS, "darwin", OSMacOS)
}

// HostOS returns the operating system the bundler runs on, in target naming.
func HostOS() string {
	return strings.ReplaceAll(runtime.GOOS, "darwin", OSMacOS)
}
