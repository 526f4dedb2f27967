package services

import (
	"errors"
	"fmt"
	"path/filepath"

	"ovnup/internal/config"
	"ovnup/internal/models"
)

// Known feature flags. Unknown flag names are treated as disabled, not as
// an error.
const (
	FlagNorthd     = "ovn-northd"
	FlagController = "ovn-controller"
)

// Service names produced by the registry
const (
	SvcOvsdbServer = "ovsdb-server"
	SvcOvsdbNb     = "ovsdb-nb"
	SvcOvsdbSb     = "ovsdb-sb"
	SvcVswitchd    = "ovs-vswitchd"
	SvcNorthd      = "ovn-northd"
	SvcController  = "ovn-controller"
)

var ErrConfigConflict = errors.New("configuration conflict")

/**
 * TemplateArgs is the data the launch/stop command templates are expanded
 * against. Derived once from configuration per bring-up run.
 */
type TemplateArgs struct {
	DataDir    string
	RunDir     string
	LogDir     string
	NbPort     int
	SbPort     int
	NbEndpoint string
	SbEndpoint string
	EncapIP    string
}

/**
 * Topology is the enabled-service DAG resolved from the feature flags.
 * Services is in dependency order: every service appears after all of the
 * services it depends on. All other components consume this instead of
 * re-evaluating flags ad hoc.
 */
type Topology struct {
	Services []models.ServiceSpec
	Args     TemplateArgs
	byName   map[string]int
}

func (t *Topology) Get(name string) *models.ServiceSpec {
	idx, ok := t.byName[name]
	if !ok {
		return nil
	}
	return &t.Services[idx]
}

// Stores returns the ovsdb-class services, in launch order
func (t *Topology) Stores() []models.ServiceSpec {
	var specs []models.ServiceSpec
	for _, svc := range t.Services {
		if svc.Kind == models.KindStore {
			specs = append(specs, svc)
		}
	}
	return specs
}

// Controllers returns the controller-class services, in launch order
func (t *Topology) Controllers() []models.ServiceSpec {
	var specs []models.ServiceSpec
	for _, svc := range t.Services {
		if svc.Kind == models.KindController {
			specs = append(specs, svc)
		}
	}
	return specs
}

// Reverse returns all services in reverse launch order, the teardown order
func (t *Topology) Reverse() []models.ServiceSpec {
	specs := make([]models.ServiceSpec, 0, len(t.Services))
	for i := len(t.Services) - 1; i >= 0; i-- {
		specs = append(specs, t.Services[i])
	}
	return specs
}

/**
 * Registry resolves feature flags into the enabled-service topology.
 * Pure function of configuration; no side effects.
 */
type Registry struct {
	cfg *config.AppConfig
}

func NewRegistry(cfg *config.AppConfig) *Registry {
	return &Registry{cfg: cfg}
}

/**
 * Resolve the enabled services and their dependency lists
 * @param {map[string]bool} flags - Named feature flags; unknown names ignored
 * @returns {*Topology} Dependency-ordered service topology
 * @returns {error} Configuration conflict, detected before anything runs
 * @description
 * - ovn-northd enabled: local NB/SB databases plus the northd daemon
 * - ovn-controller enabled: local switch database, vswitchd and controller
 * - Remote NB/SB endpoints replace local databases; the dependency is then
 *   recorded as external and gets no local launch or readiness gate
 */
func (r *Registry) Resolve(flags map[string]bool) (*Topology, error) {
	ovn := r.cfg.Ovn
	northd := flags[FlagNorthd]
	controller := flags[FlagController]

	if northd && (ovn.NbRemote != "" || ovn.SbRemote != "") {
		return nil, fmt.Errorf("%w: local databases (ovn-northd) and remote nb/sb endpoints are mutually exclusive", ErrConfigConflict)
	}
	if controller && !northd && ovn.SbRemote == "" {
		return nil, fmt.Errorf("%w: ovn-controller needs a southbound endpoint: enable ovn-northd or set ovn.sb_remote", ErrConfigConflict)
	}
	if ovn.DistributedRouting && !controller {
		return nil, fmt.Errorf("%w: distributed routing requires ovn-controller on this host", ErrConfigConflict)
	}

	args := TemplateArgs{
		DataDir:    r.cfg.Directory.Data,
		RunDir:     r.cfg.Directory.Run,
		LogDir:     r.cfg.Directory.Logs,
		NbPort:     ovn.NbPort,
		SbPort:     ovn.SbPort,
		NbEndpoint: ovn.NbRemote,
		SbEndpoint: ovn.SbRemote,
		EncapIP:    ovn.EncapIP,
	}
	if northd {
		args.NbEndpoint = "unix:" + filepath.Join(args.RunDir, "ovnnb_db.sock")
		args.SbEndpoint = "unix:" + filepath.Join(args.RunDir, "ovnsb_db.sock")
	}

	topo := &Topology{Args: args, byName: make(map[string]int)}

	if controller {
		topo.add(r.ovsdbServer(args))
	}
	if northd {
		topo.add(r.ovsdbNb(args))
		topo.add(r.ovsdbSb(args))
	}
	if controller {
		topo.add(r.vswitchd(args))
	}
	if northd {
		topo.add(r.northd(args))
	}
	if controller {
		topo.add(r.controller(args, northd))
	}

	if err := topo.verify(); err != nil {
		return nil, err
	}
	return topo, nil
}

func (t *Topology) add(spec models.ServiceSpec) {
	t.byName[spec.Name] = len(t.Services)
	t.Services = append(t.Services, spec)
}

// verify checks the DAG invariant: every dependency edge points at an
// earlier enabled service.
func (t *Topology) verify() error {
	for idx, svc := range t.Services {
		for _, dep := range svc.DependsOn {
			depIdx, ok := t.byName[dep]
			if !ok {
				return fmt.Errorf("%w: service %s depends on disabled service %s", ErrConfigConflict, svc.Name, dep)
			}
			if depIdx >= idx {
				return fmt.Errorf("%w: service %s depends on %s which starts later", ErrConfigConflict, svc.Name, dep)
			}
		}
	}
	return nil
}

func (r *Registry) check(path, failure string) models.ReadinessCheck {
	return models.ReadinessCheck{
		Path:     path,
		Interval: r.cfg.Readiness.Interval,
		Timeout:  r.cfg.Readiness.Timeout,
		Failure:  failure,
	}
}

// ovsdbServer is the switch configuration database (conf.db)
func (r *Registry) ovsdbServer(args TemplateArgs) models.ServiceSpec {
	sock := filepath.Join(args.RunDir, "db.sock")
	return models.ServiceSpec{
		Name:    SvcOvsdbServer,
		Kind:    models.KindStore,
		Command: "ovsdb-server",
		PidFile: filepath.Join(args.RunDir, "ovsdb-server.pid"),
		Args: []string{
			"{{.DataDir}}/conf.db",
			"--remote=punix:{{.RunDir}}/db.sock",
			"--unixctl={{.RunDir}}/ovsdb-server.ctl",
			"--pidfile={{.RunDir}}/ovsdb-server.pid",
		},
		Store: &models.StoreFile{
			Path:     filepath.Join(args.DataDir, "conf.db"),
			LockPath: filepath.Join(args.DataDir, ".conf.db.~lock~"),
			Schema:   r.cfg.Schema.Vswitch,
		},
		Ready: r.check(sock, fmt.Sprintf("ovsdb-server never created %s", sock)),
		Stop: models.StopCommand{
			Command: "ovs-appctl",
			Args:    []string{"-t", "{{.RunDir}}/ovsdb-server.ctl", "exit"},
			Guard:   filepath.Join(args.RunDir, "ovsdb-server.ctl"),
		},
	}
}

// ovsdbNb is the northbound database daemon
func (r *Registry) ovsdbNb(args TemplateArgs) models.ServiceSpec {
	sock := filepath.Join(args.RunDir, "ovnnb_db.sock")
	return models.ServiceSpec{
		Name:    SvcOvsdbNb,
		Kind:    models.KindStore,
		Command: "ovsdb-server",
		PidFile: filepath.Join(args.RunDir, "ovnnb_db.pid"),
		Args: []string{
			"{{.DataDir}}/ovnnb.db",
			"--remote=punix:{{.RunDir}}/ovnnb_db.sock",
			"--remote=ptcp:{{.NbPort}}:0.0.0.0",
			"--unixctl={{.RunDir}}/ovnnb_db.ctl",
			"--pidfile={{.RunDir}}/ovnnb_db.pid",
		},
		Store: &models.StoreFile{
			Path:     filepath.Join(args.DataDir, "ovnnb.db"),
			LockPath: filepath.Join(args.DataDir, ".ovnnb.db.~lock~"),
			Schema:   r.cfg.Schema.Nb,
		},
		Ready: r.check(sock, fmt.Sprintf("northbound database never created %s", sock)),
		Stop: models.StopCommand{
			Command: "ovs-appctl",
			Args:    []string{"-t", "{{.RunDir}}/ovnnb_db.ctl", "exit"},
			Guard:   filepath.Join(args.RunDir, "ovnnb_db.ctl"),
		},
	}
}

// ovsdbSb is the southbound database daemon
func (r *Registry) ovsdbSb(args TemplateArgs) models.ServiceSpec {
	sock := filepath.Join(args.RunDir, "ovnsb_db.sock")
	return models.ServiceSpec{
		Name:    SvcOvsdbSb,
		Kind:    models.KindStore,
		Command: "ovsdb-server",
		PidFile: filepath.Join(args.RunDir, "ovnsb_db.pid"),
		Args: []string{
			"{{.DataDir}}/ovnsb.db",
			"--remote=punix:{{.RunDir}}/ovnsb_db.sock",
			"--remote=ptcp:{{.SbPort}}:0.0.0.0",
			"--unixctl={{.RunDir}}/ovnsb_db.ctl",
			"--pidfile={{.RunDir}}/ovnsb_db.pid",
		},
		Store: &models.StoreFile{
			Path:     filepath.Join(args.DataDir, "ovnsb.db"),
			LockPath: filepath.Join(args.DataDir, ".ovnsb.db.~lock~"),
			Schema:   r.cfg.Schema.Sb,
		},
		Ready: r.check(sock, fmt.Sprintf("southbound database never created %s", sock)),
		Stop: models.StopCommand{
			Command: "ovs-appctl",
			Args:    []string{"-t", "{{.RunDir}}/ovnsb_db.ctl", "exit"},
			Guard:   filepath.Join(args.RunDir, "ovnsb_db.ctl"),
		},
	}
}

func (r *Registry) vswitchd(args TemplateArgs) models.ServiceSpec {
	pidFile := filepath.Join(args.RunDir, "ovs-vswitchd.pid")
	return models.ServiceSpec{
		Name:      SvcVswitchd,
		Kind:      models.KindController,
		Command:   "ovs-vswitchd",
		PidFile:   pidFile,
		DependsOn: []string{SvcOvsdbServer},
		Args: []string{
			"unix:{{.RunDir}}/db.sock",
			"--unixctl={{.RunDir}}/ovs-vswitchd.ctl",
			"--pidfile={{.RunDir}}/ovs-vswitchd.pid",
		},
		Ready: r.check(pidFile, fmt.Sprintf("ovs-vswitchd never created %s", pidFile)),
		Stop: models.StopCommand{
			Command: "ovs-appctl",
			Args:    []string{"-t", "{{.RunDir}}/ovs-vswitchd.ctl", "exit"},
			Guard:   filepath.Join(args.RunDir, "ovs-vswitchd.ctl"),
		},
	}
}

func (r *Registry) northd(args TemplateArgs) models.ServiceSpec {
	pidFile := filepath.Join(args.RunDir, "ovn-northd.pid")
	return models.ServiceSpec{
		Name:      SvcNorthd,
		Kind:      models.KindController,
		Command:   "ovn-northd",
		PidFile:   pidFile,
		DependsOn: []string{SvcOvsdbNb, SvcOvsdbSb},
		Args: []string{
			"--ovnnb-db={{.NbEndpoint}}",
			"--ovnsb-db={{.SbEndpoint}}",
			"--unixctl={{.RunDir}}/ovn-northd.ctl",
			"--pidfile={{.RunDir}}/ovn-northd.pid",
		},
		Ready: r.check(pidFile, fmt.Sprintf("ovn-northd never created %s", pidFile)),
		Stop: models.StopCommand{
			Command: "ovn-appctl",
			Args:    []string{"-t", "{{.RunDir}}/ovn-northd.ctl", "exit"},
			Guard:   filepath.Join(args.RunDir, "ovn-northd.ctl"),
		},
	}
}

func (r *Registry) controller(args TemplateArgs, localSb bool) models.ServiceSpec {
	pidFile := filepath.Join(args.RunDir, "ovn-controller.pid")
	spec := models.ServiceSpec{
		Name:      SvcController,
		Kind:      models.KindController,
		Command:   "ovn-controller",
		PidFile:   pidFile,
		DependsOn: []string{SvcVswitchd},
		Args: []string{
			"unix:{{.RunDir}}/db.sock",
			"--unixctl={{.RunDir}}/ovn-controller.ctl",
			"--pidfile={{.RunDir}}/ovn-controller.pid",
		},
		Ready: r.check(pidFile, fmt.Sprintf("ovn-controller never created %s", pidFile)),
		Stop: models.StopCommand{
			Command: "ovn-appctl",
			Args:    []string{"-t", "{{.RunDir}}/ovn-controller.ctl", "exit"},
			Guard:   filepath.Join(args.RunDir, "ovn-controller.ctl"),
		},
	}
	if localSb {
		spec.DependsOn = append(spec.DependsOn, SvcOvsdbSb)
	} else {
		// remote store targeting: the edge is satisfied externally,
		// no local launch and no local readiness gate
		spec.External = append(spec.External, args.SbEndpoint)
	}
	return spec
}
