package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heynickdev/pbdev/internal/config"
	"github.com/heynickdev/pbdev/internal/console"
	"github.com/heynickdev/pbdev/internal/devloop"
	"github.com/heynickdev/pbdev/internal/reload"
)

var devCmd = &cobra.Command{
	Use:     "dev",
	Aliases: []string{"d"},
	Short:   "Start the watch + reload development loop",
	Long: `Start the development loop: a tailwind watch process recompiling the
stylesheet on change, and air in the foreground regenerating templates,
recompiling and restarting the app on every relevant file change, proxying
browsers on the proxy port.

The tailwind watcher runs as an owned child process in its own process
group: when air exits or the session is interrupted, the watcher is
terminated with it rather than left behind as an orphan.`,
	Args: cobra.NoArgs,
	RunE: runDev,
}

func init() {
	rootCmd.AddCommand(devCmd)
}

func runDev(cmd *cobra.Command, args []string) error {
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

	// A stale reload config would launch the wrong command; refresh it
	// before handing control to air.
	if wrote, err := reload.Synthesize(cfg, cwd); err != nil {
		return err
	} else if wrote {
		console.Subtask("refreshed %s", reload.AirConfigFile)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console.Task("Starting dev loop for %s", cfg.Project.Name)
	console.Subtask("app http://localhost:%d, proxy http://localhost:%d",
		cfg.Server.AppPort, cfg.Server.ProxyPort)

	runner := devloop.NewRunner(cfg, ts, logger, cwd)
	return runner.Dev(ctx)
}
