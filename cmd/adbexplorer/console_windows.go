package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

// setupConsole turns on ANSI escape handling so log levels and phase
// banners keep their colours in cmd.exe.
func setupConsole() {
	out := windows.Handle(os.Stdout.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(out, &mode); err != nil {
		return
	}
	if err := windows.SetConsoleMode(out, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		logrus.Debugf("console mode: %s", err)
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true})
}
