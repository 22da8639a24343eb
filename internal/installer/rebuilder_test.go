package installer

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/update-bundler/internal/domain/bundle"
)

func nsisFamily(t *testing.T) bundle.InstallerFamily {
	t.Helper()

	family, ok := bundle.FamilyOf(bundle.Nsis)
	require.True(t, ok)

	return family
}

// TestCommandRebuilder_Paths runs a shell command and collects its stdout lines.
func TestCommandRebuilder_Paths(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}

	r := NewCommandRebuilder(map[bundle.PackageType]Command{
		bundle.Nsis: {
			Path: "sh",
			Args: []string{"-c", `echo "out/$UPDATE_BUNDLER_OUTPUT_FOLDER/$UPDATE_BUNDLER_TARGET.exe"; echo; echo "  second.exe  "`},
		},
	})

	settings := bundle.Settings{Target: "x86_64-pc-windows-msvc"}

	paths, err := r.Rebuild(context.Background(), settings, nsisFamily(t))
	require.NoError(t, err)
	require.Equal(t, []string{"out/nsis-updater/x86_64-pc-windows-msvc.exe", "second.exe"}, paths)
}

// TestCommandRebuilder_Dir resolves relative output lines against the command directory.
func TestCommandRebuilder_Dir(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}

	dir := t.TempDir()
	absolute := filepath.Join(t.TempDir(), "abs", "App.exe")

	r := NewCommandRebuilder(map[bundle.PackageType]Command{
		bundle.Nsis: {
			Path: "sh",
			Args: []string{"-c", "echo bundle/nsis-updater/App.exe; echo " + absolute},
			Dir:  dir,
		},
	})

	paths, err := r.Rebuild(context.Background(), bundle.Settings{}, nsisFamily(t))
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "bundle", "nsis-updater", "App.exe"),
		absolute,
	}, paths)
}

// TestCommandRebuilder_Failure wraps a failing command with its stderr.
func TestCommandRebuilder_Failure(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}

	r := NewCommandRebuilder(map[bundle.PackageType]Command{
		bundle.Nsis: {Path: "sh", Args: []string{"-c", "echo makensis exploded >&2; exit 3"}},
	})

	_, err := r.Rebuild(context.Background(), bundle.Settings{}, nsisFamily(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "makensis exploded")
}

// TestCommandRebuilder_Unconfigured skips families without a command.
func TestCommandRebuilder_Unconfigured(t *testing.T) {
	t.Parallel()

	r := NewCommandRebuilder(nil)

	paths, err := r.Rebuild(context.Background(), bundle.Settings{}, nsisFamily(t))
	require.NoError(t, err)
	require.Empty(t, paths)

	r = NewCommandRebuilder(map[bundle.PackageType]Command{bundle.Nsis: {}})

	_, err = r.Rebuild(context.Background(), bundle.Settings{}, nsisFamily(t))
	require.ErrorIs(t, err, errEmptyCommand)
}
