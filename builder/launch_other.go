//go:build !unix && !windows

package builder

import "os/exec"

func detach(cmd *exec.Cmd) {}
