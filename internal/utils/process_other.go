//go:build !unix && !linux && !darwin

package utils

import (
	"fmt"
	"os/exec"
)

func SetNewPG(cmd *exec.Cmd) {
}

func IsProcessRunning(pid int) (bool, error) {
	return false, fmt.Errorf("process probing not supported on this platform")
}

func KillPid(pid int) error {
	return fmt.Errorf("process termination not supported on this platform")
}
