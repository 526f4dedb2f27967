package proc

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"ovnup/internal/logger"
	"ovnup/internal/models"
	"ovnup/internal/utils"
)

/**
 * ProcessInstance describes one launched daemon
 * @property {string} title - Display name used in logs
 * @property {string} command - Launch command
 * @property {[]string} args - Command arguments
 * @property {string} workDir - Working directory
 * @property {string} logPath - File receiving the daemon's stdout/stderr
 * @property {RunStatus} status - running/exited/stopped/error
 * @property {time.Time} startTime - Launch time
 */
type ProcessInstance struct {
	Title     string
	Command   string
	Args      []string
	WorkDir   string
	LogPath   string
	Status    models.RunStatus
	StartTime time.Time
	pid       int
	mutex     sync.Mutex
}

func NewProcessInstance(title, command string, args []string) *ProcessInstance {
	return &ProcessInstance{
		Title:   title,
		Command: command,
		Args:    args,
		Status:  models.StatusExited,
	}
}

func (pi *ProcessInstance) Pid() int {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	return pi.pid
}

/**
 * Start the daemon detached from the orchestrator
 * @returns {error} Returns error if the command cannot be started
 * @description
 * - Opens the log file and wires it to the daemon's stdout/stderr
 * - Places the daemon in a new session so it outlives the orchestrator
 * - Does not wait for process exit; the daemon is an opaque background actor
 */
func (pi *ProcessInstance) Start() error {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()

	if pi.Status == models.StatusRunning {
		return nil
	}
	logger.Infof("Executing command: %s %s", pi.Command, strings.Join(pi.Args, " "))

	cmd := exec.Command(pi.Command, pi.Args...)
	if pi.WorkDir != "" {
		cmd.Dir = pi.WorkDir
	}

	if pi.LogPath != "" {
		logFile, err := os.OpenFile(pi.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file for '%s': %w", pi.Title, err)
		}
		defer logFile.Close()
		cmd.Stdout = logFile
		cmd.Stderr = logFile
	}

	// keep the daemon running after the orchestrator exits
	utils.SetNewPG(cmd)

	if err := cmd.Start(); err != nil {
		pi.Status = models.StatusError
		logger.Errorf("Failed to start process '%s', error: %v", pi.Title, err)
		return err
	}

	pi.pid = cmd.Process.Pid
	pi.Status = models.StatusRunning
	pi.StartTime = time.Now()
	cmd.Process.Release()

	logger.Infof("Process '%s' started (PID: %d)", pi.Title, pi.pid)
	return nil
}
