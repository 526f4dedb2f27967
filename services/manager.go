package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ovnup/internal/config"
	"ovnup/internal/logger"
	"ovnup/internal/models"
	"ovnup/internal/utils"
)

/**
 * ClusterManager drives one bring-up/teardown session of the control
 * plane. All cross-component state lives here: the resolved topology and
 * the runtime handles of launched daemons. There is no process-wide
 * mutable state outside this registry.
 */
type ClusterManager struct {
	cfg      *config.AppConfig
	topo     *Topology
	runner   utils.CommandRunner
	launcher *Launcher
	boot     *Bootstrapper
	td       *Teardown
	systemID string
}

func NewClusterManager(cfg *config.AppConfig) (*ClusterManager, error) {
	return newClusterManager(cfg, utils.NewExecRunner())
}

func newClusterManager(cfg *config.AppConfig, runner utils.CommandRunner) (*ClusterManager, error) {
	topo, err := NewRegistry(cfg).Resolve(cfg.Services)
	if err != nil {
		return nil, err
	}
	return &ClusterManager{
		cfg:      cfg,
		topo:     topo,
		runner:   runner,
		launcher: NewLauncher(cfg),
		boot:     NewBootstrapper(cfg.Directory.Data, runner),
		td:       NewTeardown(cfg, runner),
	}, nil
}

func (m *ClusterManager) Topology() *Topology {
	return m.topo
}

func (m *ClusterManager) SystemID() string {
	return m.systemID
}

/**
 * Install sequences the configured installer commands
 * @param {context.Context} ctx - Context for request cancellation
 * @returns {error} First installer failure; fatal for the bring-up
 * @description
 * - Package/build steps are external collaborators; the orchestrator only
 *   guarantees they run before bootstrap
 */
func (m *ClusterManager) Install(ctx context.Context) error {
	for _, command := range m.cfg.Install.Commands {
		if err := m.runner.Run("sh", "-c", command); err != nil {
			return fmt.Errorf("install step failed: %w", err)
		}
	}
	return nil
}

/**
 * Configure prepares the host for bring-up
 * @returns {error} Returns error if the system-id cannot be persisted
 * @description
 * - Ensures the directory layout exists
 * - Resolves the chassis system-id: configuration override, then the
 *   persisted file, then a freshly generated UUID (persisted for reuse)
 */
func (m *ClusterManager) Configure() error {
	for _, dir := range []string{m.cfg.Directory.Data, m.cfg.Directory.Run, m.cfg.Directory.Logs, m.cfg.Directory.Share, m.cfg.Directory.Cache} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	id, err := m.resolveSystemID()
	if err != nil {
		return err
	}
	m.systemID = id
	logger.Infof("Chassis system-id: %s, overlay MTU: %d", m.systemID, m.cfg.OverlayMtu())
	return nil
}

// loadSystemID reads the chassis id without generating one: the config
// override first, then the file persisted by a prior Configure.
func (m *ClusterManager) loadSystemID() string {
	if m.cfg.Ovn.SystemID != "" {
		return m.cfg.Ovn.SystemID
	}
	idFile := filepath.Join(m.cfg.Directory.Share, "system-id")
	if data, err := os.ReadFile(idFile); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func (m *ClusterManager) resolveSystemID() (string, error) {
	if id := m.loadSystemID(); id != "" {
		return id, nil
	}
	id := uuid.NewString()
	idFile := filepath.Join(m.cfg.Directory.Share, "system-id")
	if err := os.WriteFile(idFile, []byte(id+"\n"), 0644); err != nil {
		return "", fmt.Errorf("persist system-id: %w", err)
	}
	return id, nil
}

/**
 * Bootstrap recreates the backing stores of every enabled service
 * @returns {error} Fatal store creation failure
 */
func (m *ClusterManager) Bootstrap() error {
	return m.boot.ResetAndCreate(m.topo.Services)
}

/**
 * StartStores launches the ovsdb-class daemons and gates each one
 * @param {context.Context} ctx - Context for request cancellation
 * @returns {error} Fatal launch failure or readiness timeout
 * @description
 * - Launch and gate interleave per daemon: the next daemon only starts
 *   after the previous one confirmed readiness
 * - On success the endpoint knowledge file is exported for the
 *   controller-class daemons to consume
 */
func (m *ClusterManager) StartStores(ctx context.Context) error {
	for _, svc := range m.topo.Stores() {
		if err := m.launchAndGate(svc); err != nil {
			return err
		}
	}
	return m.export()
}

/**
 * StartControllers launches the controller-class daemons
 * @param {context.Context} ctx - Context for request cancellation
 * @returns {error} Fatal launch failure or readiness timeout
 * @description
 * - Consumes the endpoints published by StartStores
 * - After the daemons are up, registers the chassis external-ids and the
 *   DHCP-advertised overlay MTU
 */
func (m *ClusterManager) StartControllers(ctx context.Context) error {
	for _, svc := range m.topo.Controllers() {
		if err := m.launchAndGate(svc); err != nil {
			return err
		}
	}
	return m.registerChassis()
}

func (m *ClusterManager) launchAndGate(svc models.ServiceSpec) error {
	if _, err := m.launcher.Launch(svc, m.topo.Args); err != nil {
		return err
	}
	if err := AwaitReady(svc.Ready); err != nil {
		return fmt.Errorf("service %s: %w", svc.Name, err)
	}
	logger.Infof("Service [%s] is ready", svc.Name)
	return nil
}

// registerChassis publishes encapsulation settings and the derived DHCP
// MTU once the daemons are up.
func (m *ClusterManager) registerChassis() error {
	if m.topo.Get(SvcController) != nil {
		err := m.runner.Run("ovs-vsctl", "set", "Open_vSwitch", ".",
			"external-ids:system-id="+m.systemID,
			"external-ids:ovn-remote="+m.topo.Args.SbEndpoint,
			"external-ids:ovn-encap-type=geneve",
			"external-ids:ovn-encap-ip="+m.cfg.Ovn.EncapIP)
		if err != nil {
			return fmt.Errorf("register chassis: %w", err)
		}
	}
	if m.topo.Get(SvcNorthd) != nil {
		err := m.runner.Run("ovn-nbctl", "--db="+m.topo.Args.NbEndpoint,
			"set", "NB_Global", ".",
			fmt.Sprintf("options:dhcp-default-mtu=%d", m.cfg.OverlayMtu()))
		if err != nil {
			return fmt.Errorf("set overlay MTU: %w", err)
		}
	}
	return nil
}

/**
 * Up runs the full bring-up sequence
 * @description
 * - Install -> Configure -> Bootstrap -> StartStores -> StartControllers
 * - A fatal error stops the chain; already-started daemons stay running
 *   and are cleaned by an explicit Stop
 */
func (m *ClusterManager) Up(ctx context.Context) error {
	if err := m.Install(ctx); err != nil {
		return err
	}
	if err := m.Configure(); err != nil {
		return err
	}
	if err := m.Bootstrap(); err != nil {
		return err
	}
	if err := m.StartStores(ctx); err != nil {
		return err
	}
	return m.StartControllers(ctx)
}

/**
 * Stop tears the cluster down in reverse dependency order
 * @returns {[]error} Collected warnings; teardown itself never fails
 */
func (m *ClusterManager) Stop() []error {
	warnings := m.td.Teardown(m.topo)
	for _, svc := range m.topo.Services {
		m.launcher.MarkStopped(svc.Name)
	}
	if err := m.export(); err != nil {
		warnings = append(warnings, err)
	}
	return warnings
}

/**
 * Cleanup removes session artifacts, best-effort
 * @description
 * - Runs the configured cleanup commands (external collaborator)
 * - Removes the data and cache directories; the share directory is kept
 *   so the persisted system-id survives into the next run
 */
func (m *ClusterManager) Cleanup() {
	for _, command := range m.cfg.Install.CleanupCommands {
		if err := m.runner.Run("sh", "-c", command); err != nil {
			logger.Warnf("Cleanup step failed: %v", err)
		}
	}
	for _, dir := range []string{m.cfg.Directory.Data, m.cfg.Directory.Cache} {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warnf("Failed to remove %s: %v", dir, err)
		}
	}
}

// GetInstances reports every enabled service with its runtime state
func (m *ClusterManager) GetInstances() []*models.RuntimeHandle {
	var out []*models.RuntimeHandle
	for _, svc := range m.topo.Services {
		out = append(out, m.instance(svc.Name))
	}
	return out
}

// GetInstance reports one enabled service, nil when the name is unknown
func (m *ClusterManager) GetInstance(name string) *models.RuntimeHandle {
	if m.topo.Get(name) == nil {
		return nil
	}
	return m.instance(name)
}

func (m *ClusterManager) instance(name string) *models.RuntimeHandle {
	if h := m.launcher.Handle(name); h != nil {
		return h
	}
	if h := m.launcher.LoadHandle(name); h != nil {
		return h
	}
	return &models.RuntimeHandle{Service: name, Status: models.StatusExited}
}

func (m *ClusterManager) getServiceKnowledge(svc models.ServiceSpec) models.ServiceKnowledge {
	handle := m.instance(svc.Name)
	return models.ServiceKnowledge{
		Name:      svc.Name,
		Kind:      svc.Kind,
		Status:    handle.Status,
		Pid:       handle.Pid,
		Command:   svc.Command,
		DependsOn: svc.DependsOn,
	}
}

/**
 * ExportKnowledge writes the cluster knowledge file
 * @param {string} outputPath - Destination file
 * @returns {error} Returns error if export fails, nil on success
 * @description
 * - Collects the store endpoints, service states and log settings
 * - Controller-class daemons and external tooling consume this file to
 *   find the NB/SB connection endpoints
 */
func (m *ClusterManager) ExportKnowledge(outputPath string) error {
	if err := m.exportKnowledge(outputPath); err != nil {
		logger.Errorf("Failed to export knowledge to file [%s]: %v", outputPath, err)
		return err
	}
	return nil
}

func (m *ClusterManager) exportKnowledge(outputPath string) error {
	serviceKnowledge := []models.ServiceKnowledge{}
	for _, svc := range m.topo.Services {
		serviceKnowledge = append(serviceKnowledge, m.getServiceKnowledge(svc))
	}

	endpoints := []models.Endpoint{
		{Name: "nb", Address: m.topo.Args.NbEndpoint},
		{Name: "sb", Address: m.topo.Args.SbEndpoint},
	}
	if m.topo.Get(SvcOvsdbServer) != nil {
		endpoints = append(endpoints, models.Endpoint{
			Name:    "ovsdb",
			Address: "unix:" + filepath.Join(m.cfg.Directory.Run, "db.sock"),
		})
	}

	info := models.ClusterKnowledge{
		SystemID:  m.systemID,
		Timestamp: time.Now().Format(time.RFC3339),
		Endpoints: endpoints,
		Services:  serviceKnowledge,
		Logs: models.LogKnowledge{
			Dir:   m.cfg.Directory.Logs,
			Level: m.cfg.Log.Level,
		},
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("encode knowledge: %w", err)
	}
	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("write knowledge file: %w", err)
	}
	return nil
}

func (m *ClusterManager) export() error {
	// a fresh process (cluster down) never ran Configure; re-exporting
	// must not clobber the persisted chassis id with an empty one
	if m.systemID == "" {
		m.systemID = m.loadSystemID()
	}
	outputFile := filepath.Join(m.cfg.Directory.Share, ".well-known.json")
	return m.ExportKnowledge(outputFile)
}
