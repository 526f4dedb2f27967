package services

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// touchGuards simulates running daemons by creating their control sockets
func touchGuards(t *testing.T, topo *Topology) {
	t.Helper()
	if err := os.MkdirAll(topo.Args.RunDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, svc := range topo.Services {
		if err := os.WriteFile(svc.Stop.Guard, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestTeardownNothingRunning(t *testing.T) {
	cfg := testConfig(t)
	topo, err := NewRegistry(cfg).Resolve(map[string]bool{FlagNorthd: true, FlagController: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	runner := newFakeRunner()
	warnings := NewTeardown(cfg, runner).Teardown(topo)
	if len(warnings) != 0 {
		t.Errorf("teardown of a stopped cluster must be a no-op, got warnings: %v", warnings)
	}
	if len(runner.commands("ovs-appctl")) != 0 || len(runner.commands("ovn-appctl")) != 0 {
		t.Error("stop commands issued for daemons that never ran")
	}
}

func TestTeardownReverseOrder(t *testing.T) {
	cfg := testConfig(t)
	topo, err := NewRegistry(cfg).Resolve(map[string]bool{FlagNorthd: true, FlagController: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	touchGuards(t, topo)

	runner := newFakeRunner()
	warnings := NewTeardown(cfg, runner).Teardown(topo)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	// map each stop call back to its service via the control socket path
	var order []string
	for _, call := range runner.calls {
		if call[0] != "ovs-appctl" && call[0] != "ovn-appctl" {
			continue
		}
		for _, svc := range topo.Services {
			if len(call) > 2 && strings.HasSuffix(svc.Stop.Guard, filepath.Base(call[2])) {
				order = append(order, svc.Name)
			}
		}
	}
	want := []string{SvcController, SvcNorthd, SvcVswitchd, SvcOvsdbSb, SvcOvsdbNb, SvcOvsdbServer}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("stop order = %v, want %v", order, want)
	}

	// the session datapath is removed once the daemons are down
	if len(runner.commands("ovs-dpctl")) != 1 {
		t.Error("datapath removal not attempted")
	}
}

func TestTeardownContinuesOnFailure(t *testing.T) {
	cfg := testConfig(t)
	topo, err := NewRegistry(cfg).Resolve(map[string]bool{FlagNorthd: true, FlagController: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	touchGuards(t, topo)

	runner := newFakeRunner()
	runner.fail["ovn-appctl"] = os.ErrPermission
	warnings := NewTeardown(cfg, runner).Teardown(topo)

	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings (northd, controller), got %d: %v", len(warnings), warnings)
	}
	// the remaining services were still stopped
	if got := len(runner.commands("ovs-appctl")); got != 4 {
		t.Errorf("expected 4 ovs-appctl stops despite failures, got %d", got)
	}
}

/**
 * TestTeardownFallsBackToSignal verifies that a daemon whose stop
 * command fails is still terminated directly through its pid file.
 */
func TestTeardownFallsBackToSignal(t *testing.T) {
	cfg := testConfig(t)
	topo, err := NewRegistry(cfg).Resolve(map[string]bool{FlagNorthd: true, FlagController: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	touchGuards(t, topo)

	// stand-in daemon reachable through the northd pid file
	daemon := exec.Command("sleep", "60")
	if err := daemon.Start(); err != nil {
		t.Skipf("cannot spawn helper process: %v", err)
	}
	t.Cleanup(func() {
		daemon.Process.Kill()
		daemon.Wait()
	})
	northd := topo.Get(SvcNorthd)
	if err := os.WriteFile(northd.PidFile, []byte(fmt.Sprintf("%d\n", daemon.Process.Pid)), 0644); err != nil {
		t.Fatal(err)
	}

	runner := newFakeRunner()
	runner.fail["ovn-appctl"] = os.ErrPermission
	warnings := NewTeardown(cfg, runner).Teardown(topo)

	// northd was signalled via its pid file; only the controller, which
	// has no pid file, surfaces a warning
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	for _, w := range warnings {
		if strings.Contains(w.Error(), SvcNorthd) {
			t.Errorf("northd stop should have fallen back to a direct signal: %v", w)
		}
	}
}

func TestTeardownUnloadsBuiltModules(t *testing.T) {
	cfg := testConfig(t)
	cfg.Ovn.BuildModules = true
	topo, err := NewRegistry(cfg).Resolve(map[string]bool{FlagNorthd: true, FlagController: true})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	runner := newFakeRunner()
	NewTeardown(cfg, runner).Teardown(topo)
	if !runner.calledWith("rmmod", "openvswitch") || !runner.calledWith("rmmod", "vport-geneve") {
		t.Errorf("kernel modules not unloaded: %v", runner.calls)
	}
}
