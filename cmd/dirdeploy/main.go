// Package main implements dirdeploy, a directory handling assistant.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/dirdeploy/internal/config"
	"github.com/taigrr/dirdeploy/internal/console"
	"github.com/taigrr/dirdeploy/internal/deploy"
	"github.com/taigrr/dirdeploy/internal/guard"
	"github.com/taigrr/dirdeploy/internal/pathfilter"
	"github.com/taigrr/dirdeploy/internal/types"
)

func main() {
	err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
	os.Exit(exitCode(err))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirdeploy --dfrom <dir> --dto <dir>",
		Short: "Deploy a directory, or its empty subdirectories, to another path",
		Long: `dirdeploy automates mundane directory handling. With --func deploy_dir
it copies a directory and all of its contents into another directory,
merging with what is already there. With --func deploy_empty_subdirs it
recreates only the immediate subdirectories of the source, empty,
skipping version-control and cache directories.

A missing destination can be created on the spot; a missing source ends
the run.`,
		Example: `dirdeploy --dfrom ./template --dto ./project
dirdeploy --func deploy_empty_subdirs --dfrom ~/2025 --dto ~/2026 --nopause`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return &config.UsageError{Err: err}
			}
			return nil
		},
		SilenceUsage: true,
		RunE:         runDeploy,
	}

	config.RegisterFlags(cmd.Flags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.UsageError{Err: err}
	})

	cmd.AddCommand(newServeCmd())
	return cmd
}

func runDeploy(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(cmd.Flags())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := console.New(out, cfg.BorderWidth)
	prompter := guard.NewLinePrompter(cmd.InOrStdin(), out)

	src, dst, err := guard.New(printer, prompter).Validate(cfg.Source, cfg.Destination)
	if err != nil {
		return err
	}

	pf := pathfilter.New(&types.IgnoreConfig{IgnoredPatterns: cfg.Ignore})
	if _, err := deploy.New(printer, pf).Run(cfg.Operation, src, dst); err != nil {
		return fmt.Errorf("%s failed: %w", cfg.Operation, err)
	}

	if !cfg.NoPause {
		return prompter.Pause("Press enter to exit...")
	}
	return nil
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case config.IsUsage(err):
		return 2
	default:
		return 1
	}
}
