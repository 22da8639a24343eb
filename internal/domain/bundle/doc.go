// Package bundle holds the values handed over by the packaging stage:
// produced bundles, their package types, the settings that influence update
// packaging and the table of Windows installer output folders.
package bundle
