package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heynickdev/pbdev/internal/config"
	"github.com/heynickdev/pbdev/internal/console"
	"github.com/heynickdev/pbdev/internal/devloop"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Produce the release binary",
	Long: `Build a release binary: regenerate templates, compile a minified
stylesheet, then compile an optimized binary to bin/<project>.

Steps run sequentially; the first failure aborts the rest.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ts, err := resolveToolset()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	console.Task("Building release binary")
	runner := devloop.NewRunner(cfg, ts, logger, cwd)
	if err := runner.Release(cmd.Context()); err != nil {
		return err
	}

	console.Subtask("release binary at %s", cfg.ReleaseBinary())
	return nil
}
