package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heynickdev/pbdev/internal/config"
	"github.com/heynickdev/pbdev/internal/console"
	"github.com/heynickdev/pbdev/internal/devloop"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove build artifacts",
	Long: `Remove build artifacts: the reload supervisor's tmp directory, the
release output directory, the compiled stylesheet, and generated *_templ.go
files. Source files and everything else are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	console.Task("Cleaning build artifacts")
	removed, err := devloop.Clean(cfg, cwd)
	for _, path := range removed {
		console.Subtask("removed %s", path)
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		console.Skip("nothing to remove")
	}
	return nil
}
