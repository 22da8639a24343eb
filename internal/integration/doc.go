// Package integration runs the update-bundler workflow end to end against
// real files and external rebuild commands.
package integration
