package cmd

import (
	"github.com/spf13/cobra"
)

// NewMinifyCmd creates and returns the minify subcommand for the assetmin CLI.
// It runs a full task: resolve the file sets, minify stale files and log statistics.
func NewMinifyCmd() *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "minify [DIR...]",
		Short: "Minify JavaScript and CSS files into an output directory",
		Long: `Minify every JavaScript and CSS file selected by the configured file sets.

Each directory argument is added as a file set using the --include, --exclude and
--no-default-excludes flags. File sets can also come from a YAML task file given
with --config. Outputs keep the relative layout of their inputs below --to-dir,
with ".js" and ".css" replaced by the configured suffixes.

A file is skipped when its output exists and is at least as new as the input,
unless --overwrite is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMinify(cmd, &flags, args)
		},
	}
	flags.register(cmd)

	return cmd
}

func runMinify(cmd *cobra.Command, flags *taskFlags, dirs []string) error {
	cfg, err := flags.load(cmd, dirs)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	log := newLogger(cmd, flags.verbose)
	defer log.Sync()
	warnOverlaps(log, cfg)

	task, err := cfg.NewTask(opts, log)
	if err != nil {
		return err
	}
	return task.Execute()
}
