// Package assets implements incremental minification of JavaScript and CSS file sets.
//
// A Task walks one or more FileSets, classifies every file by suffix, derives the
// output path under the destination directory, and re-minifies only the files whose
// output is missing or older than the input. The minification itself is delegated to
// pluggable JSMinifier and CSSMinifier implementations; the defaults are backed by
// github.com/tdewolff/minify, with github.com/dchest/cssmin available for CSS.
//
// Key Components:
//
// Classification and Naming:
//   - FileType is a closed enum (JS, CSS) carrying its recognized and output suffixes
//   - OutputName replaces only a trailing recognized suffix
//
// Incremental Rebuilds:
//   - NeedsRecompression compares modification times, with overwrite and
//     same-file overrides
//
// File Sets:
//   - FileSet describes a base directory with include/exclude glob patterns
//   - DirScanner resolves a FileSet lazily using doublestar patterns
//
// Statistics:
//   - Statistics accumulates JS, CSS and total byte counts for one run
//   - Report persists the counters as JSON after a run
//
// Character Sets:
//   - Inputs are decoded from, and outputs encoded to, the configured IANA charset
//
// A Task is single-threaded: files are processed one at a time and the first I/O
// failure aborts the whole run with a *BuildError.
package assets
