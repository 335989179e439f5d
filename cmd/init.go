package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heynickdev/pbdev/internal/config"
	"github.com/heynickdev/pbdev/internal/console"
	"github.com/heynickdev/pbdev/internal/reload"
	"github.com/heynickdev/pbdev/internal/scaffold"
	"github.com/heynickdev/pbdev/internal/tools"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"i"},
	Short:   "Bootstrap the project in the current directory",
	Long: `Bootstrap a full development environment in the current directory.

The sequence, in order:
  1. Resolve the required tools (go, bun, templ, air, inotify-tools) and
     offer to install any that are missing. Declining an install aborts.
  2. Create the project directory skeleton and placeholder entry point.
  3. Synthesize the air reload configuration (.air.toml).
  4. Write a default .pbdev.yml if none exists.

The project name is the working directory basename. Re-running init is safe:
existing files are never overwritten, only the stale air config is
regenerated.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initSkipInstall bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initSkipInstall, "skip-install", false, "Fail on missing tools instead of offering installs")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	console.Task("Bootstrapping %s", cfg.Project.Name)

	// Install failures and declines must abort before any filesystem work.
	if _, err := ensureToolset(); err != nil {
		return err
	}

	if err := materialize(cfg, cwd); err != nil {
		return err
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  pbdev dev     # start the watch + reload loop")
	fmt.Printf("  open http://localhost:%d\n", cfg.Server.ProxyPort)

	return nil
}

// materialize performs every filesystem step of the bootstrap: skeleton,
// placeholder files, reload config, default pbdev config. All of it is
// idempotent and never overwrites user content.
func materialize(cfg *config.Config, cwd string) error {
	sc := scaffold.New(cfg, cwd)
	if err := sc.CreateDirs(); err != nil {
		return err
	}
	console.Subtask("directory skeleton ready")

	if wrote, err := sc.CreateEntryPoint(); err != nil {
		return err
	} else if wrote {
		console.Subtask("created %s", cfg.EntryPointFile())
	} else {
		console.Skip("%s already exists, keeping it", cfg.EntryPointFile())
	}

	if wrote, err := sc.CreateCSSInput(); err != nil {
		return err
	} else if wrote {
		console.Subtask("created %s", cfg.CSS.Input)
	}

	if wrote, err := sc.CreateBaseLayout(); err != nil {
		return err
	} else if wrote {
		console.Subtask("created views/layouts/base.templ")
	}

	if wrote, err := reload.Synthesize(cfg, cwd); err != nil {
		return err
	} else if wrote {
		console.Subtask("wrote %s", reload.AirConfigFile)
	} else {
		console.Skip("%s is current", reload.AirConfigFile)
	}

	if wrote, err := config.WriteDefault(cfg, cwd); err != nil {
		return err
	} else if wrote {
		console.Subtask("wrote %s", config.ConfigFileName)
	}

	return nil
}

// ensureToolset resolves the tool roster, installing missing tools behind
// interactive prompts unless --skip-install was given.
func ensureToolset() (tools.Toolset, error) {
	resolver := tools.NewResolver()

	if initSkipInstall {
		ts, missing := resolver.ResolveAll(tools.Required())
		if len(missing) > 0 {
			return nil, missingToolError(missing[0])
		}
		return ts, nil
	}

	installer := tools.NewInstaller(resolver, logger)
	return installer.EnsureAll(tools.Required())
}
