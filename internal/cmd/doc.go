// Package cmd provides the command-line interface implementation for assetmin.
//
// This package contains all the subcommand implementations for the assetmin CLI tool.
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - minify: Run a minification task
//   - check: Report stale outputs without writing
//   - list: Dry-run listing of selected files
//   - seed: Generate unminified JavaScript and CSS fixtures
//   - version: Version and build information
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. minify, check and list share one set of task flags
// (flags.go) layered over the internal/config package: defaults, YAML task file,
// dotenv file and ASSETMIN_* environment, then flags that were set explicitly.
//
// The package leverages the assets package for the task itself and zap for
// console logging.
package cmd
