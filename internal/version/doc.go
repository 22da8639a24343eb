// Package version exposes build metadata of update-bundler.
//
// Version, Commit and BuildTime are injected with -ldflags at release time.
package version
