package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errStale is returned by check when at least one output needs rebuilding.
var errStale = errors.New("outputs are out of date")

// NewCheckCmd creates and returns the check subcommand for the assetmin CLI.
// It reports stale outputs without writing anything.
func NewCheckCmd() *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "check [DIR...]",
		Short: "Report outputs that are missing or older than their inputs",
		Long: `Check whether every minified output is up to date.

This command resolves the file sets exactly like minify does and lists each
output that is missing or older than its input. Nothing is written. The command
exits with a non-zero status when any output is stale, which makes it usable as
a CI guard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, &flags, args)
		},
	}
	flags.register(cmd)

	return cmd
}

func runCheck(cmd *cobra.Command, flags *taskFlags, dirs []string) error {
	cfg, err := flags.load(cmd, dirs)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	task, err := cfg.NewTask(opts, newLogger(cmd, flags.verbose))
	if err != nil {
		return err
	}

	jobs, err := task.Plan()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var stale int
	for _, job := range jobs {
		if !job.Stale {
			if flags.verbose {
				fmt.Fprintf(out, "ok     %s\n", job.Output)
			}
			continue
		}
		stale++
		fmt.Fprintf(out, "stale  %s (from %s)\n", job.Output, job.Input)
	}

	fmt.Fprintf(out, "\nCheck complete:\n")
	fmt.Fprintf(out, "  Files checked: %d\n", len(jobs))
	fmt.Fprintf(out, "  Stale outputs: %d\n", stale)

	if stale > 0 {
		return errStale
	}
	return nil
}
