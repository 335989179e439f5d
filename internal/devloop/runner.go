// Package devloop orchestrates the external processes behind pbdev's dev and
// build commands: the tailwind watch child, the air reload supervisor, and
// the sequential release build steps.
//
// The tailwind watcher is not a detached shell job. It runs as an owned
// child in its own process group under the session context, so cancelling
// the session (Ctrl-C, or air exiting) reliably kills the whole watcher
// group instead of orphaning it.
package devloop

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/heynickdev/pbdev/internal/config"
	pbderrors "github.com/heynickdev/pbdev/internal/errors"
	"github.com/heynickdev/pbdev/internal/logging"
	"github.com/heynickdev/pbdev/internal/reload"
	"github.com/heynickdev/pbdev/internal/tools"
)

// Runner drives a dev session or a release build for one project.
type Runner struct {
	cfg    *config.Config
	ts     tools.Toolset
	logger logging.Logger
	root   string

	stdout io.Writer
	stderr io.Writer
}

// NewRunner returns a runner for the project rooted at root.
func NewRunner(cfg *config.Config, ts tools.Toolset, logger logging.Logger, root string) *Runner {
	return &Runner{
		cfg:    cfg,
		ts:     ts,
		logger: logger.WithComponent("devloop"),
		root:   root,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// CSSWatchArgs returns the tailwind invocation for the background watcher.
func CSSWatchArgs(cfg *config.Config, ts tools.Toolset) (string, []string) {
	return ts.Path(tools.Bun), []string{
		"x", "tailwindcss",
		"-i", cfg.CSS.Input,
		"-o", cfg.CSS.Output,
		"--watch",
	}
}

// Dev runs the development loop: the tailwind watcher in the background, the
// config guard alongside it, and air in the foreground. It blocks until air
// exits or ctx is cancelled; on return every child has been terminated.
func (r *Runner) Dev(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	name, args := CSSWatchArgs(r.cfg, r.ts)
	css := r.command(ctx, name, args...)
	if err := css.Start(); err != nil {
		return pbderrors.StepFailure("css watch", err)
	}
	r.logger.Info("css watcher started", "pid", css.Process.Pid)

	cssDone := make(chan error, 1)
	go func() { cssDone <- css.Wait() }()

	guard := reload.NewGuard(r.cfg, r.root, r.logger)
	go func() {
		if err := guard.Run(ctx); err != nil {
			r.logger.Warn("config guard unavailable", "error", err.Error())
		}
	}()

	air := r.command(ctx, r.ts.Path(tools.Air))
	air.Stdin = os.Stdin
	airErr := air.Run()

	// Air is gone; tear down the watcher group and collect it.
	cancel()
	select {
	case err := <-cssDone:
		if err != nil && ctx.Err() == nil {
			r.logger.Warn("css watcher exited", "error", err.Error())
		}
	case <-time.After(5 * time.Second):
		r.logger.Warn("css watcher did not exit after cancel")
	}

	if airErr != nil && !isCancel(ctx, airErr) {
		return pbderrors.StepFailure("air", airErr)
	}
	return nil
}

// command builds an owned child: its own process group, group-wide kill on
// context cancel, inherited output streams.
func (r *Runner) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.root
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.WaitDelay = 10 * time.Second
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		return terminateGroup(cmd)
	}
	return cmd
}

func isCancel(ctx context.Context, err error) bool {
	if ctx.Err() == nil {
		return false
	}
	// A cancelled session makes the supervisor exit non-zero; that is the
	// expected shutdown path, not a failure.
	var exitErr *exec.ExitError
	return stderrors.As(err, &exitErr) || stderrors.Is(err, ctx.Err())
}
