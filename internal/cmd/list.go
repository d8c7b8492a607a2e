package cmd

import (
	"fmt"

	"github.com/dendrascience/assetmin/assets"
	"github.com/spf13/cobra"
)

// NewListCmd creates and returns the list subcommand for the assetmin CLI.
// It prints the files a task would process and where their outputs go.
func NewListCmd() *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "list [DIR...]",
		Short: "List the files selected by the file sets",
		Long: `List every JavaScript and CSS file selected by the file sets.

This is a dry run: each line shows the file type, the input path relative to
its file set and the output path it would be written to. Files with other
extensions are not listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, &flags, args)
		},
	}
	flags.register(cmd)

	return cmd
}

func runList(cmd *cobra.Command, flags *taskFlags, dirs []string) error {
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
	counts := map[assets.FileType]int{}
	for _, job := range jobs {
		counts[job.Type]++
		fmt.Fprintf(out, "%-3s  %s -> %s\n", job.Type, job.Rel, job.Output)
	}
	fmt.Fprintf(out, "Total files: %d (%d JS, %d CSS)\n", len(jobs), counts[assets.JS], counts[assets.CSS])
	return nil
}
