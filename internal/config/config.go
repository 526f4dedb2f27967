package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"ovnup/internal/env"
)

/**
 * Server configuration parameters
 * @property {string} address - Server listening address (e.g. ":8080")
 * @property {string} mode - Application mode (debug/release/test)
 */
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

/**
 * OVN control plane configuration
 * @property {string} nb_remote - Remote northbound endpoint, empty means local
 * @property {string} sb_remote - Remote southbound endpoint, empty means local
 * @property {int} nb_port - TCP port served by the local northbound database
 * @property {int} sb_port - TCP port served by the local southbound database
 * @property {bool} distributed_routing - Alternate routing mode toggle
 * @property {int} native_mtu - MTU of the native interface used for tunnels
 * @property {bool} build_modules - Build/unload kernel modules for the session
 * @property {string} system_id - Pre-set chassis identifier, generated if empty
 * @property {string} encap_ip - Local tunnel endpoint address
 */
type OvnConfig struct {
	NbRemote           string `mapstructure:"nb_remote"`
	SbRemote           string `mapstructure:"sb_remote"`
	NbPort             int    `mapstructure:"nb_port"`
	SbPort             int    `mapstructure:"sb_port"`
	DistributedRouting bool   `mapstructure:"distributed_routing"`
	NativeMtu          int    `mapstructure:"native_mtu"`
	BuildModules       bool   `mapstructure:"build_modules"`
	SystemID           string `mapstructure:"system_id"`
	EncapIP            string `mapstructure:"encap_ip"`
}

/**
 * Directory layout used by the orchestrator
 * @property {string} data - Database files and lock artifacts
 * @property {string} run - Pid files and control/db sockets
 * @property {string} logs - Per-run timestamped logs plus stable symlinks
 * @property {string} share - system-id file and .well-known.json
 * @property {string} cache - Runtime handle cache entries
 */
type DirectoryConfig struct {
	Data  string `mapstructure:"data"`
	Run   string `mapstructure:"run"`
	Logs  string `mapstructure:"logs"`
	Share string `mapstructure:"share"`
	Cache string `mapstructure:"cache"`
}

/**
 * Canonical schema sources for the backing stores
 */
type SchemaConfig struct {
	Vswitch string `mapstructure:"vswitch"`
	Nb      string `mapstructure:"nb"`
	Sb      string `mapstructure:"sb"`
}

/**
 * Readiness polling bounds applied to every launched daemon
 * @property {int} interval - Poll cadence in seconds
 * @property {int} timeout - Per-daemon readiness timeout in seconds
 */
type ReadinessConfig struct {
	Interval int `mapstructure:"interval"`
	Timeout  int `mapstructure:"timeout"`
}

/**
 * External installer hooks, sequenced before bootstrap / after teardown
 */
type InstallConfig struct {
	Commands        []string `mapstructure:"commands"`
	CleanupCommands []string `mapstructure:"cleanup_commands"`
}

type AppConfig struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Ovn       OvnConfig       `mapstructure:"ovn"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Schema    SchemaConfig    `mapstructure:"schema"`
	Readiness ReadinessConfig `mapstructure:"readiness"`
	Install   InstallConfig   `mapstructure:"install"`
	Services  map[string]bool `mapstructure:"services"`
}

// GeneveOverhead is the encapsulation overhead subtracted from the native
// MTU before it is advertised to DHCP clients on overlay networks.
const GeneveOverhead = 58

/**
 * Compute the MTU advertised to DHCP clients on overlay networks
 * @returns {int} Native MTU minus the Geneve encapsulation overhead
 */
func (c *AppConfig) OverlayMtu() int {
	return c.Ovn.NativeMtu - GeneveOverhead
}

/**
 * Load application configuration from YAML file
 */
func LoadConfig() (*AppConfig, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(env.OvnupDir)
	viper.SetEnvPrefix("OVNUP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var Config AppConfig

func collectConfig(cfg *AppConfig) *AppConfig {
	if cfg.Directory.Data == "" {
		cfg.Directory.Data = filepath.Join(env.OvnupDir, "data")
	}
	if cfg.Directory.Run == "" {
		cfg.Directory.Run = filepath.Join(env.OvnupDir, "run")
	}
	if cfg.Directory.Logs == "" {
		cfg.Directory.Logs = filepath.Join(env.OvnupDir, "logs")
	}
	if cfg.Directory.Share == "" {
		cfg.Directory.Share = filepath.Join(env.OvnupDir, "share")
	}
	if cfg.Directory.Cache == "" {
		cfg.Directory.Cache = filepath.Join(env.OvnupDir, "cache")
	}
	if cfg.Schema.Vswitch == "" {
		cfg.Schema.Vswitch = "/usr/share/openvswitch/vswitch.ovsschema"
	}
	if cfg.Schema.Nb == "" {
		cfg.Schema.Nb = "/usr/share/ovn/ovn-nb.ovsschema"
	}
	if cfg.Schema.Sb == "" {
		cfg.Schema.Sb = "/usr/share/ovn/ovn-sb.ovsschema"
	}
	if cfg.Ovn.NbPort == 0 {
		cfg.Ovn.NbPort = 6641
	}
	if cfg.Ovn.SbPort == 0 {
		cfg.Ovn.SbPort = 6642
	}
	if cfg.Ovn.NativeMtu == 0 {
		cfg.Ovn.NativeMtu = 1500
	}
	if cfg.Ovn.EncapIP == "" {
		cfg.Ovn.EncapIP = "127.0.0.1"
	}
	if cfg.Readiness.Interval == 0 {
		cfg.Readiness.Interval = 1
	}
	if cfg.Readiness.Timeout == 0 {
		cfg.Readiness.Timeout = 60
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8848"
	}
	if cfg.Services == nil {
		cfg.Services = map[string]bool{
			"ovn-northd":     true,
			"ovn-controller": true,
		}
	}
	return cfg
}

/**
 * Reload application configuration from disk
 * @returns {error} Returns error if reload fails, nil on success
 */
func ReloadConfig() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	Config = *cfg
	collectConfig(&Config)
	return nil
}

func init() {
	cfg, err := LoadConfig()
	if err == nil {
		Config = *cfg
	}
	collectConfig(&Config)
}
