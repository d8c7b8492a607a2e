// Package main provides the assetmin command-line interface.
//
// assetmin is a batch minifier for web assets. It walks one or more file sets,
// minifies every JavaScript and CSS file whose output is missing or older than
// its input, and writes the results below an output directory with the same
// relative layout. Per-file and aggregate size reductions are logged, and the
// outputs can be precompressed and summarized in a JSON report.
//
// The main binary supports multiple subcommands:
//   - minify: Minify stale files into the output directory
//   - check: Report outputs that are missing or out of date
//   - list: List the files a task would process
//   - seed: Generate unminified test files
package main
