//go:build !unix

package execrun

import "os/exec"

// defaultInterpreter returns the script interpreter used when a task sets
// no interpreter of its own.
func defaultInterpreter() []string {
	return []string{"cmd", "/C"}
}

// setGracefulShutdown is a no-op outside unix: cmd.Cancel defaults to
// killing the process, which is the best available on these platforms.
func setGracefulShutdown(cmd *exec.Cmd) {
	_ = cmd
}
