package archive

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// TestWriteZip_RoundTrip zips one file into a missing directory and reads it back.
func TestWriteZip_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "App_1.0.0_x64-setup.exe")
	content := []byte("MZ\x90\x00installer payload")
	require.NoError(t, os.WriteFile(source, content, 0o644))

	destination := filepath.Join(dir, "out", "nested", "App.nsis.zip")

	got, err := WriteZip(source, destination)
	require.NoError(t, err)
	require.Equal(t, destination, got)

	zr, err := zip.OpenReader(destination)
	require.NoError(t, err)

	defer zr.Close()

	require.Len(t, zr.File, 1)

	entry := zr.File[0]
	require.Equal(t, "App_1.0.0_x64-setup.exe", entry.Name)
	require.Equal(t, zip.Store, entry.Method)
	require.Equal(t, os.FileMode(0o755), entry.Mode().Perm())

	rc, err := entry.Open()
	require.NoError(t, err)

	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, content, data)
}

// TestWriteZip_Idempotent writes the same input twice and compares the bytes.
func TestWriteZip_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "App.msi")
	require.NoError(t, os.WriteFile(source, []byte("msi database"), 0o644))

	first, err := WriteZip(source, filepath.Join(dir, "a", "App.msi.zip"))
	require.NoError(t, err)

	second, err := WriteZip(source, filepath.Join(dir, "b", "App.msi.zip"))
	require.NoError(t, err)

	firstBytes, err := os.ReadFile(first)
	require.NoError(t, err)

	secondBytes, err := os.ReadFile(second)
	require.NoError(t, err)

	require.Equal(t, firstBytes, secondBytes)
}

// TestWriteZip_MissingSource fails without leaving a destination behind.
func TestWriteZip_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	destination := filepath.Join(dir, "App.zip")

	_, err := WriteZip(filepath.Join(dir, "missing.exe"), destination)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = os.Stat(destination)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestWriteZip_SameFile refuses to overwrite the source and leaves it intact.
func TestWriteZip_SameFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "App.zip")
	require.NoError(t, os.WriteFile(source, []byte("already a zip"), 0o644))

	_, err := WriteZip(source, filepath.Join(dir, ".", "App.zip"))
	require.ErrorIs(t, err, ErrSameFile)

	data, err := os.ReadFile(source)
	require.NoError(t, err)
	require.Equal(t, "already a zip", string(data))
}

// TestWriteZip_DirectorySource refuses a directory.
func TestWriteZip_DirectorySource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := WriteZip(dir, filepath.Join(dir, "x.zip"))
	require.Error(t, err)
}

// TestWriteTarGz_Tree archives an .app-like tree with a symlink and checks every entry.
func TestWriteTarGz_Tree(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}

	dir := t.TempDir()
	app := filepath.Join(dir, "Demo.app")
	macos := filepath.Join(app, "Contents", "MacOS")
	require.NoError(t, os.MkdirAll(macos, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(macos, "demo"), []byte("binary"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(app, "Contents", "Info.plist"), []byte("<plist/>"), 0o644))
	require.NoError(t, os.Symlink("MacOS/demo", filepath.Join(app, "Contents", "current")))

	destination := app + ".tar.gz"

	got, err := WriteTarGz(app, destination)
	require.NoError(t, err)
	require.Equal(t, destination, got)

	entries := readTarGz(t, destination)

	require.Equal(t, byte(tar.TypeDir), entries["Demo.app/"].typeflag)
	require.Equal(t, byte(tar.TypeDir), entries["Demo.app/Contents/"].typeflag)
	require.Equal(t, "binary", entries["Demo.app/Contents/MacOS/demo"].content)
	require.Equal(t, int64(0o755), entries["Demo.app/Contents/MacOS/demo"].mode&0o777)
	require.Equal(t, "<plist/>", entries["Demo.app/Contents/Info.plist"].content)

	link := entries["Demo.app/Contents/current"]
	require.Equal(t, byte(tar.TypeSymlink), link.typeflag)
	require.Equal(t, "MacOS/demo", link.linkname)
	require.Empty(t, link.content)
}

// TestWriteTarGz_SingleFile archives an AppImage file under its own name.
func TestWriteTarGz_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "demo_1.0.0_amd64.AppImage")
	require.NoError(t, os.WriteFile(source, []byte("ELF image"), 0o755))

	destination := filepath.Join(dir, "dist", "demo_1.0.0_amd64.AppImage.tar.gz")

	_, err := WriteTarGz(source, destination)
	require.NoError(t, err)

	entries := readTarGz(t, destination)
	require.Len(t, entries, 1)
	require.Equal(t, "ELF image", entries["demo_1.0.0_amd64.AppImage"].content)
}

// TestWriteTarGz_MissingSource surfaces the I/O error.
func TestWriteTarGz_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := WriteTarGz(filepath.Join(dir, "none.app"), filepath.Join(dir, "none.app.tar.gz"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestWrite_Dispatch routes jobs by format and rejects unknown formats.
func TestWrite_Dispatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "App.exe")
	require.NoError(t, os.WriteFile(source, []byte("exe"), 0o644))

	got, err := Write(Job{Source: source, Destination: filepath.Join(dir, "App.zip"), Format: FormatZip})
	require.NoError(t, err)
	require.FileExists(t, got)

	got, err = Write(Job{Source: source, Destination: filepath.Join(dir, "App.exe.tar.gz"), Format: FormatTarGz})
	require.NoError(t, err)
	require.FileExists(t, got)

	_, err = Write(Job{Source: source, Destination: filepath.Join(dir, "App.7z"), Format: "7z"})
	require.ErrorIs(t, err, errUnknownFormat)
}

type tarEntry struct {
	typeflag byte
	mode     int64
	linkname string
	content  string
}

func readTarGz(t *testing.T, archivePath string) map[string]tarEntry {
	t.Helper()

	f, err := os.Open(archivePath)
	require.NoError(t, err)

	defer f.Close()

	gr, err := gzip.NewReader(f)
	require.NoError(t, err)

	defer gr.Close()

	entries := make(map[string]tarEntry)
	tr := tar.NewReader(gr)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		require.NoError(t, err)

		data, err := io.ReadAll(tr)
		require.NoError(t, err)

		entries[header.Name] = tarEntry{
			typeflag: header.Typeflag,
			mode:     header.Mode,
			linkname: header.Linkname,
			content:  string(data),
		}
	}

	return entries
}
