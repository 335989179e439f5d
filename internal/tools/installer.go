package tools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/heynickdev/pbdev/internal/console"
	pbderrors "github.com/heynickdev/pbdev/internal/errors"
	"github.com/heynickdev/pbdev/internal/logging"
)

// packageManagers is the fixed probe order for system package installs. The
// first one found on PATH wins.
var packageManagers = []struct {
	name string
	args []string
}{
	{"apt-get", []string{"install", "-y"}},
	{"dnf", []string{"install", "-y"}},
	{"yum", []string{"install", "-y"}},
	{"pacman", []string{"-S", "--noconfirm"}},
	{"zypper", []string{"install", "-y"}},
	{"brew", []string{"install"}},
}

// Installer offers interactive installation of missing tools. Prompts block
// on stdin with no timeout and default to "no"; a declined or failed install
// is fatal for the whole run.
type Installer struct {
	resolver *Resolver
	logger   logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// runCommand is swapped in tests so installs never touch the host.
	runCommand func(name string, args ...string) error
}

// NewInstaller returns an installer reading prompts from stdin.
func NewInstaller(resolver *Resolver, logger logging.Logger) *Installer {
	inst := &Installer{
		resolver: resolver,
		logger:   logger.WithComponent("installer"),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	inst.runCommand = inst.runHostCommand
	return inst
}

// EnsureAll resolves the roster and walks the missing tools in order,
// offering to install each. The first declined or failed install aborts with
// a typed error; later tools are not prompted for and later bootstrap steps
// must not run. On success the returned Toolset reflects post-install
// resolution.
func (inst *Installer) EnsureAll(roster []Tool) (Toolset, error) {
	ts, missing := inst.resolver.ResolveAll(roster)
	for _, tool := range missing {
		if err := inst.ensure(tool); err != nil {
			return nil, err
		}
		// Re-resolve so later steps use the freshly installed path.
		path, found := inst.resolver.Resolve(tool)
		if !found {
			inst.logger.Warn("tool still not resolvable after install, deferring to invocation",
				"tool", tool.Name)
		}
		ts[tool.Name] = path
	}
	return ts, nil
}

func (inst *Installer) ensure(tool Tool) error {
	if tool.Install == nil {
		return pbderrors.MissingTool(tool.Name,
			fmt.Sprintf("%s not found; install it manually (https://go.dev/dl)", tool.Description))
	}

	if !inst.confirm(fmt.Sprintf("%s (%s) is not installed. Install it now?", tool.Name, tool.Description)) {
		return pbderrors.DeclinedInstall(tool.Name)
	}

	console.Task("Installing %s", tool.Name)
	if err := inst.install(tool); err != nil {
		return err
	}
	console.Subtask("%s installed", tool.Name)
	return nil
}

func (inst *Installer) install(tool Tool) error {
	spec := tool.Install
	switch spec.Method {
	case InstallScript:
		inst.logger.Info("running remote install script", "tool", tool.Name, "url", spec.ScriptURL)
		script := fmt.Sprintf("curl -fsSL %s | bash", spec.ScriptURL)
		if err := inst.runCommand("bash", "-c", script); err != nil {
			return pbderrors.StepFailure("install "+tool.Name, err)
		}
		return nil

	case InstallGoModule:
		inst.logger.Info("installing Go module", "tool", tool.Name, "module", spec.Module)
		if err := inst.runCommand("go", "install", spec.Module+"@latest"); err != nil {
			return pbderrors.StepFailure("install "+tool.Name, err)
		}
		return nil

	case InstallSystemPackage:
		return inst.installSystemPackage(tool)

	default:
		return pbderrors.StepFailure("install "+tool.Name,
			fmt.Errorf("unknown install method %d", spec.Method))
	}
}

func (inst *Installer) installSystemPackage(tool Tool) error {
	pkg := tool.Install.Package
	for _, pm := range packageManagers {
		if _, err := inst.resolver.lookPath(pm.name); err != nil {
			continue
		}
		inst.logger.Info("installing system package", "package", pkg, "manager", pm.name)
		args := append(append([]string{}, pm.args...), pkg)
		if pm.name != "brew" {
			args = append([]string{pm.name}, args...)
			if err := inst.runCommand("sudo", args...); err != nil {
				return pbderrors.StepFailure("install "+pkg, err)
			}
			return nil
		}
		// brew refuses to run under sudo.
		if err := inst.runCommand(pm.name, args...); err != nil {
			return pbderrors.StepFailure("install "+pkg, err)
		}
		return nil
	}
	return pbderrors.UnsupportedEnvironment(pkg,
		fmt.Sprintf("no supported package manager found; install %s manually", pkg))
}

// confirm asks a yes/no question defaulting to no. Any read error counts as
// the default.
func (inst *Installer) confirm(prompt string) bool {
	fmt.Fprintf(inst.out, "%s [y/N]: ", prompt)

	input, err := inst.reader.ReadString('\n')
	if err != nil {
		return false
	}

	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func (inst *Installer) runHostCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
