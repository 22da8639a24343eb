// Package archive writes update archives: a stored zip holding a single
// installer, or a gzip-compressed tar of a file or directory tree.
//
// Symbolic links inside a tree are archived as links and never followed.
package archive
