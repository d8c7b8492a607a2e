// Package version reports the assetmin version and build metadata.
//
// Version, Commit and Date are injected at build time with -ldflags, for example:
//
//	-ldflags "-X github.com/dendrascience/assetmin/version.Version=v1.0.0 -X github.com/dendrascience/assetmin/version.Commit=abc123"
//
// When they are left at their development values the module version and VCS
// settings recorded by the Go toolchain (debug.ReadBuildInfo) are used instead.
//
//   - GetVersion(): Simple version string, also stored in JSON reports
//   - GetFullVersion(): Version with short commit and build date, shown by --version
//   - GetInfo(): Complete version information as a struct
//   - PrintVersion(): Human-readable version output
package version
