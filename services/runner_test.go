package services

import (
	"fmt"
	"os"
	"strings"
)

// fakeRunner records commands instead of executing them, so lifecycle
// logic can be exercised without ovs/ovn binaries installed.
type fakeRunner struct {
	calls [][]string
	fail  map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{fail: make(map[string]error)}
}

func (f *fakeRunner) Run(name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	if err := f.fail[name]; err != nil {
		return err
	}
	// emulate ovsdb-tool create: a fresh schema-initialized file
	if name == "ovsdb-tool" && len(args) >= 3 && args[0] == "create" {
		return os.WriteFile(args[1], []byte(fmt.Sprintf("schema %s\n", args[2])), 0644)
	}
	return nil
}

// commands returns every recorded call whose command name matches
func (f *fakeRunner) commands(name string) [][]string {
	var out [][]string
	for _, call := range f.calls {
		if call[0] == name {
			out = append(out, call)
		}
	}
	return out
}

func (f *fakeRunner) calledWith(name, substr string) bool {
	for _, call := range f.commands(name) {
		if strings.Contains(strings.Join(call, " "), substr) {
			return true
		}
	}
	return false
}
