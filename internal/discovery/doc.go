// Package discovery resolves the --file argument into the ordered list of
// project files to process: the file itself, every matching file below a
// folder, or nothing when the path does not exist.
package discovery
