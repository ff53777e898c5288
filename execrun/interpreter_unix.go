//go:build unix

package execrun

import (
	"os/exec"
	"syscall"
)

// defaultInterpreter returns the script interpreter used when a task sets
// no interpreter of its own.
func defaultInterpreter() []string {
	return []string{"/bin/sh", "-c"}
}

// setGracefulShutdown arranges for cmd's process to receive SIGINT
// when its context is canceled, rather than the default SIGKILL, so a
// script task has a chance to clean up and the parent can adopt its exit
// status.
func setGracefulShutdown(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGINT)
	}
}
