// Package manifest reads the bundle list handed over by the packaging stage
// and writes the report of produced update archives, both as YAML files.
package manifest
