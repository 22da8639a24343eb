// Package bundler turns installers produced by the packaging stage into
// self-update archives.
//
// The target operating system is resolved from the build target triple and
// a platform provider is picked at runtime: Windows installers are zipped one
// by one (rebuilding them for the update channel when needed), the macOS
// .app and the Linux AppImage are stored as .tar.gz next to the original.
package bundler
