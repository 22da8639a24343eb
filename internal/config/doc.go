// Package config defines the settings of update-bundler and helpers to load,
// validate and save them in YAML format.
//
// Config holds the build target triple, the Windows webview install mode and
// the commands used to rebuild Windows installers for the update channel.
package config
