package daemon

import (
	"testing"

	"blossom/internal/generator"
)

func TestDaemonEnforcesSingleInstance(t *testing.T) {
	first := testDaemon(t, generator.NewStatic(), false)
	second, err := New(first.cfg, first.pipe, nil, first.uploads, nil, first.logger)
	if err != nil {
		t.Fatalf("daemon: %v", err)
	}

	if err := first.Start(t.Context()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer first.Stop()

	if err := second.Start(t.Context()); err == nil {
		second.Stop()
		t.Fatal("expected second daemon start to fail while lock is held")
	}
}

func TestDaemonStatusBeforeStart(t *testing.T) {
	d := testDaemon(t, generator.NewStatic(), false)
	status := d.Status()
	if status.Running {
		t.Fatal("daemon should not report running before start")
	}
	if status.Analyzer != "file-heuristic" {
		t.Fatalf("unexpected analyzer %q", status.Analyzer)
	}
	if status.LockFilePath == "" {
		t.Fatal("expected lock file path")
	}
}
