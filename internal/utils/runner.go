package utils

import (
	"fmt"
	"os/exec"
	"strings"

	"ovnup/internal/logger"
)

// CommandRunner runs external commands. The exec-backed implementation is
// used in production; tests substitute a recording fake so bring-up logic
// can be exercised without ovs/ovn binaries installed.
type CommandRunner interface {
	Run(name string, args ...string) error
}

type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(name string, args ...string) error {
	logger.Debugf("Executing command: %s %s", name, strings.Join(args, " "))
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
