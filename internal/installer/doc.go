// Package installer reruns the Windows installer toolchains in updater mode.
//
// The toolchain itself is an external command configured per installer
// family. It is told which output folder to use through environment variables
// and reports each produced installer path on its own stdout line.
package installer
