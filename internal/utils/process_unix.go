//go:build unix || linux || darwin

package utils

import (
	"os"
	"os/exec"
	"syscall"
)

// SetNewPG places the child in a new session so the daemon keeps running
// after the orchestrator exits.
func SetNewPG(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
}

// IsProcessRunning probes pid liveness with signal 0
func IsProcessRunning(pid int) (bool, error) {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false, err
	}
	if err := proc.Signal(syscall.Signal(0)); err != nil {
		return false, nil
	}
	return true, nil
}

// KillPid sends SIGTERM to the process, used as the fallback when a
// daemon's stop command fails.
func KillPid(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Signal(syscall.SIGTERM)
}
