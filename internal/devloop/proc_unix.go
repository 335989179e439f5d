//go:build !windows

package devloop

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places the child in its own process group so the whole
// group (tailwind spawns node workers) can be signalled together.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminateGroup sends SIGTERM to the child's process group. The WaitDelay
// on the command escalates to SIGKILL if the group ignores it.
func terminateGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
}
