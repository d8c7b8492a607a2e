package cmd

import (
	"github.com/dendrascience/assetmin/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the assetmin CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "assetmin",
		Short: "assetmin - Batch minifier for JavaScript and CSS assets",
		Long: `assetmin minifies the JavaScript and CSS files of a source tree into an output tree.

It keeps the relative layout of the inputs, skips files whose outputs are already
up to date, and logs per-file and aggregate size reductions. Outputs can optionally
be precompressed for static file servers.

Use subcommands to perform different operations:
  - minify: Minify stale files into the output directory
  - check: Report outputs that are missing or out of date
  - list: List the files a task would process
  - seed: Generate unminified test files
  - version: Print version and build information`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	groupAssets := "assets"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupAssets,
		Title: "Asset Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	minifyCmd := NewMinifyCmd()
	checkCmd := NewCheckCmd()
	listCmd := NewListCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	minifyCmd.GroupID = groupAssets
	checkCmd.GroupID = groupAssets
	listCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(minifyCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
