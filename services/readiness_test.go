package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ovnup/internal/models"
)

func TestAwaitConditionSucceedsBeforeTimeout(t *testing.T) {
	polls := 0
	cond := func() bool {
		polls++
		return polls >= 3
	}
	err := AwaitCondition(cond, 10*time.Millisecond, time.Second, "never ready")
	if err != nil {
		t.Fatalf("AwaitCondition failed: %v", err)
	}
	if polls != 3 {
		t.Errorf("expected 3 polls, got %d", polls)
	}
}

func TestAwaitConditionTimeout(t *testing.T) {
	polls := 0
	cond := func() bool {
		polls++
		return false
	}
	start := time.Now()
	err := AwaitCondition(cond, 10*time.Millisecond, 100*time.Millisecond, "socket missing")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "socket missing") {
		t.Errorf("timeout error must carry the failure message, got: %v", err)
	}
	if polls < 2 {
		t.Errorf("expected repeated polls before the timeout, got %d", polls)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout fired far too late: %v", elapsed)
	}
}

func TestAwaitReadyExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.sock")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	check := models.ReadinessCheck{Path: path, Interval: 1, Timeout: 5, Failure: "db.sock missing"}
	if err := AwaitReady(check); err != nil {
		t.Fatalf("AwaitReady failed on existing signal: %v", err)
	}
}

func TestAwaitReadyMissingFile(t *testing.T) {
	check := models.ReadinessCheck{
		Path:     filepath.Join(t.TempDir(), "db.sock"),
		Interval: 1,
		Timeout:  1,
		Failure:  "db.sock missing",
	}
	err := AwaitReady(check)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "db.sock missing") {
		t.Errorf("unexpected error: %v", err)
	}
}
