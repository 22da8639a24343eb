// Package packager is the entry point behind the update-bundler command.
//
// It loads the settings and the bundle manifest, produces the update archives
// through the bundler service, prints their paths and optionally writes a
// YAML report for the next pipeline stage.
package packager
