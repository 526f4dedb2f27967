package services

import (
	"fmt"
	"os"
	"path/filepath"

	"ovnup/internal/config"
	"ovnup/internal/logger"
	"ovnup/internal/models"
	"ovnup/internal/utils"
)

/**
 * Teardown stops the cluster and removes transient runtime artifacts.
 * Teardown never fails the overall run on a missing resource; stop
 * failures are collected as warnings and cleanup proceeds through the
 * remaining services.
 */
type Teardown struct {
	cfg    *config.AppConfig
	runner utils.CommandRunner
}

func NewTeardown(cfg *config.AppConfig, runner utils.CommandRunner) *Teardown {
	return &Teardown{
		cfg:    cfg,
		runner: runner,
	}
}

/**
 * Teardown the enabled services in reverse dependency order
 * @param {*Topology} topo - Resolved topology of this configuration
 * @returns {[]error} Collected warnings; empty on a clean teardown
 * @description
 * - Issues each service's stop command, last-started first
 * - Stopping an already-stopped service is a no-op, not an error
 * - Removes leftover socket files, the session's kernel datapath, and
 *   optionally-built kernel modules, all best-effort
 */
func (t *Teardown) Teardown(topo *Topology) []error {
	var warnings []error

	for _, svc := range topo.Reverse() {
		if err := t.stopService(svc, topo.Args); err != nil {
			warnings = append(warnings, err)
			logger.Warnf("Stop [%s] failed: %v", svc.Name, err)
			continue
		}
		logger.Infof("Service [%s] stopped", svc.Name)
	}

	t.removeSockets(topo)

	if topo.Get(SvcController) != nil {
		// the kernel datapath is session state, not configuration
		if err := t.runner.Run("ovs-dpctl", "del-dp", "ovs-system"); err != nil {
			logger.Debugf("Datapath removal skipped: %v", err)
		}
	}

	if t.cfg.Ovn.BuildModules {
		for _, module := range []string{"vport-geneve", "openvswitch"} {
			if err := t.runner.Run("rmmod", module); err != nil {
				logger.Debugf("Module %s not unloaded: %v", module, err)
			}
		}
	}

	return warnings
}

func (t *Teardown) stopService(svc models.ServiceSpec, args TemplateArgs) error {
	if svc.Stop.Guard != "" && !utils.PathExists(svc.Stop.Guard) {
		// already stopped
		logger.Debugf("Service [%s] isn't running, nothing to stop", svc.Name)
		return nil
	}
	command, cmdArgs, err := utils.GetCommandLine(svc.Stop.Command, svc.Stop.Args, args)
	if err != nil {
		return fmt.Errorf("stop %s: %w", svc.Name, err)
	}
	if err := t.runner.Run(command, cmdArgs...); err != nil {
		// last resort: signal the daemon directly via its pid file
		if pid, pidErr := utils.ReadPidFile(svc.PidFile); pidErr == nil {
			if killErr := utils.KillPid(pid); killErr == nil {
				logger.Warnf("Stop command for [%s] failed, terminated pid %d directly: %v", svc.Name, pid, err)
				return nil
			}
		}
		return fmt.Errorf("stop %s: %w", svc.Name, err)
	}
	return nil
}

// removeSockets clears db/control sockets left in the run directory
func (t *Teardown) removeSockets(topo *Topology) {
	for _, svc := range topo.Services {
		for _, path := range []string{svc.Ready.Path, svc.Stop.Guard} {
			if path == "" || filepath.Ext(path) == ".pid" {
				continue
			}
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				logger.Warnf("Failed to remove %s: %v", path, err)
			}
		}
	}
}
