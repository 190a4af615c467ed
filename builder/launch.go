package builder

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
)

// Launcher starts the packaged executable without waiting for it.
type Launcher interface {
	Launch(ctx context.Context, path, dir string) (pid int, err error)
}

// DetachedLauncher starts the executable in its own session or process
// group and releases it, so it outlives the orchestrator.
type DetachedLauncher struct{}

func (DetachedLauncher) Launch(ctx context.Context, path, dir string) (int, error) {
	cmd := exec.Command(path)
	cmd.Dir = dir
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to launch %s: %w", path, err)
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		logrus.Debugf("release %d: %s", pid, err)
	}

	if running, err := processRunning(ctx, pid); err != nil {
		logrus.Debugf("could not inspect process %d: %s", pid, err)
	} else if !running {
		logrus.Warnf("%s exited right after launch", path)
	}
	return pid, nil
}

func processRunning(ctx context.Context, pid int) (bool, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		if err == process.ErrorProcessNotRunning {
			return false, nil
		}
		return false, err
	}
	return p.IsRunningWithContext(ctx)
}
