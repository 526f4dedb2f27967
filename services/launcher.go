package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"ovnup/internal/config"
	"ovnup/internal/logger"
	"ovnup/internal/models"
	"ovnup/internal/proc"
	"ovnup/internal/utils"
)

/**
 * Launcher starts enabled daemons detached and records runtime handles.
 * A service is only handed to the launcher after every service it depends
 * on has passed its readiness gate.
 */
type Launcher struct {
	cfg      *config.AppConfig
	handles  map[string]*models.RuntimeHandle
	dirsOnce bool

	// start is swapped by tests to avoid spawning real daemons
	start func(pi *proc.ProcessInstance) error
}

func NewLauncher(cfg *config.AppConfig) *Launcher {
	return &Launcher{
		cfg:     cfg,
		handles: make(map[string]*models.RuntimeHandle),
		start:   func(pi *proc.ProcessInstance) error { return pi.Start() },
	}
}

/**
 * Launch one service whose dependencies already confirmed readiness
 * @param {models.ServiceSpec} spec - Resolved service definition
 * @param {TemplateArgs} args - Template data for the command line
 * @returns {*models.RuntimeHandle} Handle recorded for the session
 * @returns {error} Fatal launch failure (binary missing, bad arguments);
 *                  never retried
 */
func (l *Launcher) Launch(spec models.ServiceSpec, args TemplateArgs) (*models.RuntimeHandle, error) {
	if err := l.ensureRuntimeDirs(); err != nil {
		return nil, err
	}

	command, cmdArgs, err := utils.GetCommandLine(spec.Command, spec.Args, args)
	if err != nil {
		return nil, err
	}

	logPath, err := l.rotateLog(spec.Name)
	if err != nil {
		return nil, err
	}

	pi := proc.NewProcessInstance("service "+spec.Name, command, cmdArgs)
	pi.LogPath = logPath
	if err := l.start(pi); err != nil {
		recordLaunchFailure(spec.Name)
		return nil, fmt.Errorf("launch %s: %w", spec.Name, err)
	}

	handle := &models.RuntimeHandle{
		Service:   spec.Name,
		Pid:       pi.Pid(),
		PidFile:   spec.PidFile,
		Socket:    spec.Ready.Path,
		LogFile:   logPath,
		StartedAt: time.Now().Format(time.RFC3339),
		Status:    models.StatusRunning,
	}
	l.handles[spec.Name] = handle
	l.saveHandle(handle)
	recordLaunch(spec.Name)
	return handle, nil
}

func (l *Launcher) Handle(name string) *models.RuntimeHandle {
	return l.handles[name]
}

// MarkStopped invalidates the handle after a successful stop
func (l *Launcher) MarkStopped(name string) {
	h, ok := l.handles[name]
	if !ok {
		return
	}
	h.Status = models.StatusStopped
	h.Pid = 0
	l.saveHandle(h)
	recordServiceDown(name)
}

/**
 * ensureRuntimeDirs creates the shared runtime directories and asserts
 * their ownership once, before any daemon needing write access starts.
 * Running it again is a no-op.
 */
func (l *Launcher) ensureRuntimeDirs() error {
	if l.dirsOnce {
		return nil
	}
	for _, dir := range []string{l.cfg.Directory.Run, l.cfg.Directory.Logs, l.cfg.Directory.Cache} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create runtime directory %s: %w", dir, err)
		}
	}
	if runtime.GOOS != "windows" {
		// daemons must be able to write their sockets before they start
		if err := os.Chown(l.cfg.Directory.Run, os.Getuid(), os.Getgid()); err != nil {
			logger.Warnf("Failed to fix ownership of %s: %v", l.cfg.Directory.Run, err)
		}
	}
	l.dirsOnce = true
	return nil
}

/**
 * rotateLog gives this run its own timestamped log file and repoints the
 * stable <name>.log symlink at it, so repeated runs don't clobber logs
 * @param {string} name - Service name
 * @returns {string} Path of the timestamped log file
 */
func (l *Launcher) rotateLog(name string) (string, error) {
	logDir := l.cfg.Directory.Logs
	logPath := filepath.Join(logDir, fmt.Sprintf("%s.log.%s", name, time.Now().Format("20060102-150405")))
	link := filepath.Join(logDir, name+".log")
	if err := os.Remove(link); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("replace log symlink %s: %w", link, err)
	}
	if err := os.Symlink(filepath.Base(logPath), link); err != nil {
		return "", fmt.Errorf("create log symlink %s: %w", link, err)
	}
	return logPath, nil
}

/**
 * Save runtime handle to its cache file
 * @param {*models.RuntimeHandle} handle - Handle to persist
 * @description
 * - Ensures the cache directory exists
 * - Marshals the handle to JSON
 * - Writes to a per-service JSON file under cache/services/
 */
func (l *Launcher) saveHandle(handle *models.RuntimeHandle) {
	cacheDir := filepath.Join(l.cfg.Directory.Cache, "services")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		logger.Errorf("Service [%s] save handle failed, error: %v", handle.Service, err)
		return
	}

	jsonData, err := json.MarshalIndent(handle, "", "  ")
	if err != nil {
		logger.Errorf("Service [%s] save handle failed, error: %v", handle.Service, err)
		return
	}

	cacheFile := filepath.Join(cacheDir, handle.Service+".json")
	if err := os.WriteFile(cacheFile, jsonData, 0644); err != nil {
		logger.Errorf("Service [%s] save handle failed, error: %v", handle.Service, err)
		return
	}

	logger.Debugf("Service [%s] handle saved to %s", handle.Service, cacheFile)
}

/**
 * LoadHandle reattaches to a handle persisted by a previous run
 * @param {string} name - Service name
 * @returns {*models.RuntimeHandle} nil when no usable cache entry exists
 * @description
 * - Reads the per-service cache file
 * - Probes the recorded pid; a dead process demotes the entry to exited
 */
func (l *Launcher) LoadHandle(name string) *models.RuntimeHandle {
	cacheFile := filepath.Join(l.cfg.Directory.Cache, "services", name+".json")
	jsonData, err := os.ReadFile(cacheFile)
	if err != nil {
		return nil
	}

	var handle models.RuntimeHandle
	if err := json.Unmarshal(jsonData, &handle); err != nil {
		logger.Errorf("Failed to unmarshal cached handle for service %s: %v", name, err)
		return nil
	}
	if handle.Service != name {
		logger.Warnf("Cache file name mismatch for service %s (cached name: %s), skipping", name, handle.Service)
		return nil
	}

	// the daemon's own pid file is authoritative; daemons fork, so the
	// pid recorded at launch may be a parent that already exited
	if handle.PidFile != "" {
		if pid, err := utils.ReadPidFile(handle.PidFile); err == nil && pid != handle.Pid {
			logger.Debugf("Service [%s] pid corrected from %d to %d via %s", name, handle.Pid, pid, handle.PidFile)
			handle.Pid = pid
		}
	}

	if handle.Pid > 0 {
		running, err := utils.IsProcessRunning(handle.Pid)
		if err != nil || !running {
			logger.Warnf("Process %d for service %s not found, marking as exited", handle.Pid, name)
			handle.Status = models.StatusExited
			handle.Pid = 0
			l.saveHandle(&handle)
		}
	}

	l.handles[name] = &handle
	return &handle
}
