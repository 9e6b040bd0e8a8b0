// Package convert turns Google Code wiki files into Creole files on disk.
//
// A Converter enumerates source pages (a single file, or the matching files
// of one directory, non-recursively), runs each through the creole pipeline
// and writes the result next to its siblings in the destination directory,
// only when the content changed.
package convert
