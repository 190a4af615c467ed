// Package utils holds process, filesystem and console helpers shared by the
// build orchestrator and the device commands.
package utils

import (
	"sync"
)

var Version string
var CmdName = "adbexplorer"

var (
	G_debug bool

	cleanupMu    sync.Mutex
	cleanupFuncs []func()
)

// AddCleanup registers f to run on exit, in reverse registration order.
func AddCleanup(f func()) {
	cleanupMu.Lock()
	cleanupFuncs = append(cleanupFuncs, f)
	cleanupMu.Unlock()
}

func RunCleanup() {
	cleanupMu.Lock()
	funcs := cleanupFuncs
	cleanupFuncs = nil
	cleanupMu.Unlock()
	for i := len(funcs) - 1; i >= 0; i-- {
		funcs[i]()
	}
}
