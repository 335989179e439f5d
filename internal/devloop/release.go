package devloop

import (
	"context"
	"os/exec"

	"github.com/heynickdev/pbdev/internal/config"
	"github.com/heynickdev/pbdev/internal/console"
	pbderrors "github.com/heynickdev/pbdev/internal/errors"
	"github.com/heynickdev/pbdev/internal/tools"
)

// Step is one blocking command of the release sequence.
type Step struct {
	Name string
	Cmd  string
	Args []string
}

// ReleaseSteps returns the fixed release sequence: regenerate templates,
// production CSS build, optimized binary.
func ReleaseSteps(cfg *config.Config, ts tools.Toolset) []Step {
	return []Step{
		{
			Name: "templ generate",
			Cmd:  ts.Path(tools.Templ),
			Args: []string{"generate"},
		},
		{
			Name: "css build",
			Cmd:  ts.Path(tools.Bun),
			Args: []string{
				"x", "tailwindcss",
				"-i", cfg.CSS.Input,
				"-o", cfg.CSS.Output,
				"--minify",
			},
		},
		{
			Name: "go build",
			Cmd:  ts.Path(tools.Go),
			Args: []string{
				"build",
				"-ldflags", "-s -w",
				"-o", cfg.ReleaseBinary(),
				"./" + cfg.EntryPointDir(),
			},
		},
	}
}

// Release runs the release sequence. The first failing step aborts the rest.
func (r *Runner) Release(ctx context.Context) error {
	for _, step := range ReleaseSteps(r.cfg, r.ts) {
		console.Subtask("%s", step.Name)
		r.logger.Info("running release step", "step", step.Name, "cmd", step.Cmd)

		cmd := exec.CommandContext(ctx, step.Cmd, step.Args...)
		cmd.Dir = r.root
		cmd.Stdout = r.stdout
		cmd.Stderr = r.stderr
		if err := cmd.Run(); err != nil {
			return pbderrors.StepFailure(step.Name, err)
		}
	}
	return nil
}
