package models

// ServiceKind separates backing-store daemons from controller-class daemons.
// Stores are launched and gated first; controllers consume their endpoints.
type ServiceKind string

const (
	KindStore      ServiceKind = "store"
	KindController ServiceKind = "controller"
)

// RunStatus is the lifecycle state of a launched daemon
type RunStatus string

const (
	StatusRunning RunStatus = "running"
	StatusStopped RunStatus = "stopped"
	StatusExited  RunStatus = "exited"
	StatusError   RunStatus = "error"
)

/**
 * Backing store description
 * @property {string} path - Database file path under the data directory
 * @property {string} lock_path - Lock artifact cleared before recreation
 * @property {string} schema - Canonical schema source the store is created from
 */
type StoreFile struct {
	Path     string `json:"path"`
	LockPath string `json:"lock_path"`
	Schema   string `json:"schema"`
}

/**
 * Stop command issued at teardown
 * @property {string} command - Command name (template, see utils.GetCommandLine)
 * @property {[]string} args - Command arguments (templates)
 * @property {string} guard - Control socket whose absence means the daemon
 *                            is already stopped; the stop becomes a no-op
 */
type StopCommand struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
	Guard   string   `json:"guard,omitempty"`
}

/**
 * Service definition resolved by the registry
 * @property {string} name - Service name
 * @property {ServiceKind} kind - store or controller
 * @property {string} command - Launch command (template)
 * @property {[]string} args - Launch arguments (templates)
 * @property {string} pid_file - Pid file the daemon writes once started
 * @property {[]string} depends_on - Services that must pass their gate first
 * @property {[]string} external - Remote endpoints satisfying dependencies
 * @property {StoreFile} store - Backing store, nil when the daemon has none
 * @property {ReadinessCheck} ready - Readiness gate evaluated after launch
 * @property {StopCommand} stop - Teardown stop command
 */
type ServiceSpec struct {
	Name      string         `json:"name"`
	Kind      ServiceKind    `json:"kind"`
	Command   string         `json:"command"`
	Args      []string       `json:"args,omitempty"`
	PidFile   string         `json:"pid_file,omitempty"`
	DependsOn []string       `json:"depends_on,omitempty"`
	External  []string       `json:"external,omitempty"`
	Store     *StoreFile     `json:"store,omitempty"`
	Ready     ReadinessCheck `json:"ready"`
	Stop      StopCommand    `json:"stop"`
}
