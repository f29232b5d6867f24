//go:build !windows

package execshell

import (
	"os/exec"
	"syscall"
)

// configureProcessGroup places the child in its own process group so that
// cancellation can reach every descendant it spawned.
func configureProcessGroup(executable *exec.Cmd) {
	executable.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcessTree forcefully terminates the child together with its process group.
func killProcessTree(executable *exec.Cmd) {
	if executable.Process == nil {
		return
	}
	groupKillError := syscall.Kill(-executable.Process.Pid, syscall.SIGKILL)
	if groupKillError != nil {
		_ = executable.Process.Kill()
	}
}
