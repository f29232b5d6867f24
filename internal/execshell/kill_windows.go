//go:build windows

package execshell

import "os/exec"

// configureProcessGroup is a no-op on Windows where job control is not
// expressed through process groups.
func configureProcessGroup(executable *exec.Cmd) {}

// killProcessTree forcefully terminates the child process.
func killProcessTree(executable *exec.Cmd) {
	if executable.Process == nil {
		return
	}
	_ = executable.Process.Kill()
}
