package services

import (
	"path/filepath"
	"testing"

	"ovnup/internal/config"
)

// testConfig builds a configuration rooted in a temp directory
func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	base := t.TempDir()
	return &config.AppConfig{
		Log: config.LogConfig{Level: "info", Path: "console"},
		Ovn: config.OvnConfig{
			NbPort:    6641,
			SbPort:    6642,
			NativeMtu: 1500,
			EncapIP:   "127.0.0.1",
		},
		Directory: config.DirectoryConfig{
			Data:  filepath.Join(base, "data"),
			Run:   filepath.Join(base, "run"),
			Logs:  filepath.Join(base, "logs"),
			Share: filepath.Join(base, "share"),
			Cache: filepath.Join(base, "cache"),
		},
		Schema: config.SchemaConfig{
			Vswitch: "/usr/share/openvswitch/vswitch.ovsschema",
			Nb:      "/usr/share/ovn/ovn-nb.ovsschema",
			Sb:      "/usr/share/ovn/ovn-sb.ovsschema",
		},
		Readiness: config.ReadinessConfig{Interval: 1, Timeout: 5},
		Services:  map[string]bool{},
	}
}
