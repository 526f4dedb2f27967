package utils

import (
	"reflect"
	"testing"
)

func TestGetCommandLine(t *testing.T) {
	data := struct {
		RunDir string
		NbPort int
	}{RunDir: "/tmp/run", NbPort: 6641}

	command, args, err := GetCommandLine("ovsdb-server", []string{
		"--remote=ptcp:{{.NbPort}}:0.0.0.0",
		"--unixctl={{.RunDir}}/ovnnb_db.ctl",
	}, data)
	if err != nil {
		t.Fatalf("GetCommandLine failed: %v", err)
	}
	if command != "ovsdb-server" {
		t.Errorf("command = %q", command)
	}
	want := []string{"--remote=ptcp:6641:0.0.0.0", "--unixctl=/tmp/run/ovnnb_db.ctl"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

// the command name goes through the same expansion as the args, so a
// spec may template the binary location itself
func TestGetCommandLineTemplatedName(t *testing.T) {
	command, _, err := GetCommandLine("{{.BinDir}}/ovsdb-server", nil, struct{ BinDir string }{"/usr/local/bin"})
	if err != nil {
		t.Fatalf("GetCommandLine failed: %v", err)
	}
	if command != "/usr/local/bin/ovsdb-server" {
		t.Errorf("command = %q, want /usr/local/bin/ovsdb-server", command)
	}
}

func TestGetCommandLineBadTemplate(t *testing.T) {
	if _, _, err := GetCommandLine("ovsdb-server", []string{"{{.Unclosed"}, nil); err == nil {
		t.Error("expected parse error for malformed template")
	}
}
