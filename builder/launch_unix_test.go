//go:build unix

package builder_test

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/adb-explorer/adbexplorer/builder"
)

func TestDetachedLauncherDoesNotWait(t *testing.T) {
	dir := t.TempDir()
	app := filepath.Join(dir, "ADBExplorer")
	if err := os.WriteFile(app, []byte("#!/bin/sh\nsleep 3\n"), 0755); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	pid, err := builder.DetachedLauncher{}.Launch(context.Background(), app, dir)
	took := time.Since(start)
	if err != nil {
		t.Fatal(err)
	}
	defer syscall.Kill(pid, syscall.SIGKILL)

	if pid <= 0 {
		t.Errorf("pid = %d", pid)
	}
	if took > time.Second {
		t.Errorf("Launch blocked for %s", took)
	}
}

func TestDetachedLauncherMissingExecutable(t *testing.T) {
	_, err := builder.DetachedLauncher{}.Launch(context.Background(), filepath.Join(t.TempDir(), "nope"), "")
	if err == nil {
		t.Error("launching a missing file succeeded")
	}
}
