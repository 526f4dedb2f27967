package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"ovnup/internal/models"
	"ovnup/internal/proc"
)

func TestLaunchRecordsHandle(t *testing.T) {
	cfg := testConfig(t)
	topo, err := NewRegistry(cfg).Resolve(map[string]bool{FlagNorthd: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	launcher := NewLauncher(cfg)
	var launched []string
	launcher.start = func(pi *proc.ProcessInstance) error {
		launched = append(launched, pi.Command)
		return nil
	}

	spec := *topo.Get(SvcOvsdbNb)
	handle, err := launcher.Launch(spec, topo.Args)
	if err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if handle.Status != models.StatusRunning {
		t.Errorf("handle status = %s, want running", handle.Status)
	}
	if len(launched) != 1 || launched[0] != "ovsdb-server" {
		t.Errorf("wrong command launched: %v", launched)
	}

	// handle persisted to the cache
	cacheFile := filepath.Join(cfg.Directory.Cache, "services", SvcOvsdbNb+".json")
	data, err := os.ReadFile(cacheFile)
	if err != nil {
		t.Fatalf("handle cache missing: %v", err)
	}
	var cached models.RuntimeHandle
	if err := json.Unmarshal(data, &cached); err != nil {
		t.Fatalf("handle cache corrupt: %v", err)
	}
	if cached.Service != SvcOvsdbNb {
		t.Errorf("cached service name = %s", cached.Service)
	}
}

func TestLaunchExpandsTemplates(t *testing.T) {
	cfg := testConfig(t)
	topo, err := NewRegistry(cfg).Resolve(map[string]bool{FlagNorthd: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	launcher := NewLauncher(cfg)
	var gotArgs []string
	launcher.start = func(pi *proc.ProcessInstance) error {
		gotArgs = pi.Args
		return nil
	}

	if _, err := launcher.Launch(*topo.Get(SvcNorthd), topo.Args); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	wantNb := "--ovnnb-db=unix:" + filepath.Join(cfg.Directory.Run, "ovnnb_db.sock")
	found := false
	for _, arg := range gotArgs {
		if arg == wantNb {
			found = true
		}
	}
	if !found {
		t.Errorf("northd args missing %q: %v", wantNb, gotArgs)
	}
}

func TestRotateLogSymlink(t *testing.T) {
	cfg := testConfig(t)
	topo, err := NewRegistry(cfg).Resolve(map[string]bool{FlagNorthd: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	launcher := NewLauncher(cfg)
	launcher.start = func(pi *proc.ProcessInstance) error { return nil }

	spec := *topo.Get(SvcOvsdbNb)
	handle1, err := launcher.Launch(spec, topo.Args)
	if err != nil {
		t.Fatalf("first launch failed: %v", err)
	}
	handle2, err := launcher.Launch(spec, topo.Args)
	if err != nil {
		t.Fatalf("second launch failed: %v", err)
	}

	link := filepath.Join(cfg.Directory.Logs, SvcOvsdbNb+".log")
	target, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("stable log symlink missing: %v", err)
	}
	if target != filepath.Base(handle2.LogFile) {
		t.Errorf("symlink points at %s, want %s", target, filepath.Base(handle2.LogFile))
	}
	_ = handle1
}

func TestLaunchFailureIsFatal(t *testing.T) {
	cfg := testConfig(t)
	topo, err := NewRegistry(cfg).Resolve(map[string]bool{FlagNorthd: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	launcher := NewLauncher(cfg)
	launcher.start = func(pi *proc.ProcessInstance) error { return os.ErrNotExist }

	if _, err := launcher.Launch(*topo.Get(SvcOvsdbNb), topo.Args); err == nil {
		t.Fatal("expected launch failure to surface")
	}
	if launcher.Handle(SvcOvsdbNb) != nil {
		t.Error("failed launch must not record a handle")
	}
}

func TestLoadHandleStalePid(t *testing.T) {
	cfg := testConfig(t)
	cacheDir := filepath.Join(cfg.Directory.Cache, "services")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		t.Fatal(err)
	}
	stale := models.RuntimeHandle{
		Service: SvcOvsdbNb,
		Pid:     1 << 27, // beyond any real pid
		Status:  models.StatusRunning,
	}
	data, _ := json.Marshal(&stale)
	if err := os.WriteFile(filepath.Join(cacheDir, SvcOvsdbNb+".json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	launcher := NewLauncher(cfg)
	handle := launcher.LoadHandle(SvcOvsdbNb)
	if handle == nil {
		t.Fatal("LoadHandle returned nil")
	}
	if handle.Status != models.StatusExited || handle.Pid != 0 {
		t.Errorf("stale handle not demoted: status=%s pid=%d", handle.Status, handle.Pid)
	}
}

/**
 * TestLoadHandlePidFileAuthoritative verifies reattach against the
 * daemon's own pid file: a cached pid left behind by a forking daemon is
 * corrected before the liveness probe.
 */
func TestLoadHandlePidFileAuthoritative(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Directory.Run, 0755); err != nil {
		t.Fatal(err)
	}
	pidFile := filepath.Join(cfg.Directory.Run, "ovnnb_db.pid")
	if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644); err != nil {
		t.Fatal(err)
	}

	cacheDir := filepath.Join(cfg.Directory.Cache, "services")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		t.Fatal(err)
	}
	cached := models.RuntimeHandle{
		Service: SvcOvsdbNb,
		Pid:     1 << 27,
		PidFile: pidFile,
		Status:  models.StatusRunning,
	}
	data, _ := json.Marshal(&cached)
	if err := os.WriteFile(filepath.Join(cacheDir, SvcOvsdbNb+".json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	handle := NewLauncher(cfg).LoadHandle(SvcOvsdbNb)
	if handle == nil {
		t.Fatal("LoadHandle returned nil")
	}
	if handle.Pid != os.Getpid() {
		t.Errorf("pid not corrected from the pid file: %d", handle.Pid)
	}
	if handle.Status != models.StatusRunning {
		t.Errorf("live daemon demoted: %s", handle.Status)
	}
}
