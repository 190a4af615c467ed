package main

import (
	"io"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newFileHook writes every entry to w as plain text, whatever the console
// formatter does.
func newFileHook(w io.Writer) logrus.Hook {
	return lfshook.NewHook(w, &logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
}

func setupLogging(logFile string, isDebug bool) func() {
	logrus.SetLevel(logrus.InfoLevel)
	if isDebug {
		logrus.SetLevel(logrus.TraceLevel)
	}
	if logFile == "" {
		return func() {}
	}

	rotating := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
	}
	logrus.AddHook(newFileHook(rotating))
	return func() {
		if err := rotating.Close(); err != nil {
			logrus.Debugf("closing log file: %s", err)
		}
	}
}
